package formatter

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/artpar/docschema/core/convention"
	"github.com/artpar/docschema/core/validation"
)

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Name returns the formatter name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Description returns the formatter description.
func (f *YAMLFormatter) Description() string {
	return "YAML output format"
}

// FormatRecords formats records as a YAML document. Field order follows
// the schema, so mappings are built as nodes rather than Go maps.
func (f *YAMLFormatter) FormatRecords(w io.Writer, d convention.Derived, records []validation.Record, opts FormatOptions) error {
	columns := resolveColumns(d, opts.Columns)

	data := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range records {
		m, err := mappingNode(project(rec, columns))
		if err != nil {
			return err
		}
		data.Content = append(data.Content, m)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	appendPair(root, "schema", scalarNode(d.Name()))
	appendPair(root, "collection", scalarNode(d.Collection))
	appendPair(root, "count", scalarNode(len(records)))
	appendPair(root, "data", data)

	return f.encode(w, root)
}

// FormatErrors formats field failures as YAML.
func (f *YAMLFormatter) FormatErrors(w io.Writer, errs []*validation.FieldError, _ FormatOptions) error {
	items := make([]map[string]any, len(errs))
	for i, fe := range errs {
		item := map[string]any{
			"kind":    string(fe.Kind),
			"schema":  fe.Schema,
			"message": fe.Message,
		}
		if fe.Field != "" {
			item["field"] = fe.Field
		}
		if fe.Min != nil {
			item["min"] = *fe.Min
		}
		if fe.Max != nil {
			item["max"] = *fe.Max
		}
		items[i] = item
	}
	return f.encode(w, map[string]any{"errors": items})
}

// encode writes YAML to the writer.
func (f *YAMLFormatter) encode(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

func mappingNode(fields []validation.FieldValue) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, fv := range fields {
		val := fv.Value
		if ts, ok := val.(time.Time); ok {
			val = ts.Format(time.RFC3339Nano)
		}
		v := &yaml.Node{}
		if err := v.Encode(val); err != nil {
			return nil, fmt.Errorf("encode field %s: %w", fv.Name, err)
		}
		appendPair(m, fv.Name, v)
	}
	return m, nil
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}

func scalarNode(v any) *yaml.Node {
	n := &yaml.Node{}
	// Strings and ints always encode.
	_ = n.Encode(v)
	return n
}

func init() {
	if err := Register(NewYAMLFormatter()); err != nil {
		fmt.Printf("failed to register yaml formatter: %v\n", err)
	}
}

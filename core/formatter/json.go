package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/artpar/docschema/core/convention"
	"github.com/artpar/docschema/core/validation"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Description returns the formatter description.
func (f *JSONFormatter) Description() string {
	return "JSON output format"
}

// orderedObject encodes fields as a JSON object in their given order.
type orderedObject []validation.FieldValue

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fv := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fv.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(fv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FormatRecords formats records as a JSON document.
func (f *JSONFormatter) FormatRecords(w io.Writer, d convention.Derived, records []validation.Record, opts FormatOptions) error {
	columns := resolveColumns(d, opts.Columns)

	data := make([]orderedObject, len(records))
	for i, rec := range records {
		data[i] = project(rec, columns)
	}

	output := struct {
		Schema     string          `json:"schema"`
		Collection string          `json:"collection"`
		Count      int             `json:"count"`
		Data       []orderedObject `json:"data"`
	}{
		Schema:     d.Name(),
		Collection: d.Collection,
		Count:      len(data),
		Data:       data,
	}

	return f.encode(w, output, opts.Compact)
}

// FormatErrors formats field failures as JSON.
func (f *JSONFormatter) FormatErrors(w io.Writer, errs []*validation.FieldError, opts FormatOptions) error {
	if errs == nil {
		errs = []*validation.FieldError{}
	}
	output := map[string]any{
		"errors": errs,
	}
	return f.encode(w, output, opts.Compact)
}

// encode writes JSON to the writer.
func (f *JSONFormatter) encode(w io.Writer, data any, compact bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

func init() {
	if err := Register(NewJSONFormatter()); err != nil {
		fmt.Printf("failed to register json formatter: %v\n", err)
	}
}

package validation

import (
	"bytes"
	"encoding/json"
)

// FieldValue is one validated field of a record.
type FieldValue struct {
	Name  string
	Value any
}

// Record is a validated record. Fields keep the schema's declared order.
//
// Values are typed by field type: string and email as string, int as int64,
// float as float64, bool as bool, timestamp as time.Time. Null is nil.
type Record struct {
	// Schema is the declared schema name.
	Schema string

	// Collection is the persistence target identifier.
	Collection string

	fields []FieldValue
}

// Get returns the value of a field.
func (r Record) Get(name string) (any, bool) {
	for _, fv := range r.fields {
		if fv.Name == name {
			return fv.Value, true
		}
	}
	return nil, false
}

// Fields returns the record's fields in order.
func (r Record) Fields() []FieldValue {
	out := make([]FieldValue, len(r.fields))
	copy(out, r.fields)
	return out
}

// Names returns field names in order.
func (r Record) Names() []string {
	out := make([]string, len(r.fields))
	for i, fv := range r.fields {
		out[i] = fv.Name
	}
	return out
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// IsZero reports whether r is the zero Record returned alongside an error.
func (r Record) IsZero() bool {
	return r.Schema == "" && len(r.fields) == 0
}

// Map returns the fields as an unordered map.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.fields))
	for _, fv := range r.fields {
		out[fv.Name] = fv.Value
	}
	return out
}

// MarshalJSON encodes the fields as a JSON object in declared order.
// HTML escaping is left to the outer encoder.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, fv := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(fv.Name); err != nil {
			return nil, err
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		if err := enc.Encode(fv.Value); err != nil {
			return nil, err
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// trimNewline drops the newline json.Encoder appends.
func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}

func (r *Record) set(name string, value any) {
	r.fields = append(r.fields, FieldValue{Name: name, Value: value})
}

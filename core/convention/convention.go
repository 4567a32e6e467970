// Package convention derives naming and lookup data from schema definitions.
package convention

import (
	"strings"

	"github.com/artpar/docschema/core/schema"
)

// Derived contains all derived information from a schema definition.
// This is the expanded form used by the registry and the validator.
type Derived struct {
	// Source is the original schema definition.
	Source schema.Definition

	// Collection is the persistence target identifier.
	Collection string

	// Fields in declaration order.
	Fields []schema.Field

	// index maps field name to its position in Fields.
	index map[string]int
}

// Collection returns the collection identifier for a schema name.
// User -> "user", Inquiry -> "inquiry".
func Collection(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Derive expands a schema definition into its derived form.
func Derive(def schema.Definition) Derived {
	fields := make([]schema.Field, len(def.Fields))
	copy(fields, def.Fields)

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}

	return Derived{
		Source:     def,
		Collection: Collection(def.Name),
		Fields:     fields,
		index:      index,
	}
}

// Name returns the declared schema name.
func (d Derived) Name() string {
	return d.Source.Name
}

// HasField reports whether the schema declares a field with this name.
func (d Derived) HasField(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Field returns the field with the given name.
func (d Derived) Field(name string) (schema.Field, bool) {
	i, ok := d.index[name]
	if !ok {
		return schema.Field{}, false
	}
	return d.Fields[i], true
}

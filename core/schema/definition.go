package schema

// Definition is a named schema describing one record kind.
type Definition struct {
	// Name is the declared name of the record kind (e.g., "User", "Inquiry").
	// The collection identifier is derived from it by convention.
	Name string `yaml:"name"`

	// Description for documentation.
	Description string `yaml:"description,omitempty"`

	// Fields in declaration order. Validation and output follow this order.
	Fields []Field `yaml:"fields"`
}

// Field returns the field with the given name.
func (d Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns field names in declaration order.
func (d Definition) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// RequiredFields returns the names of required fields in declaration order.
func (d Definition) RequiredFields() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Document is the top-level layout of a schema file.
type Document struct {
	Schemas []Definition `yaml:"schemas"`
}

package schema

// Field defines one named attribute of a schema.
type Field struct {
	// Name is the field identifier, unique within its schema.
	Name string `yaml:"name"`

	// Type is the field type. See FieldType constants.
	Type FieldType `yaml:"type"`

	// Required indicates the field must be supplied.
	// Required fields never carry a default.
	Required bool `yaml:"required,omitempty"`

	// Nullable allows an explicit null for an optional field.
	Nullable bool `yaml:"nullable,omitempty"`

	// Default applies when an optional field is absent.
	// An unset default on an optional field means null.
	Default Optional[any] `yaml:"default,omitempty"`

	// Constraints defines validation rules for this field.
	Constraints []Constraint `yaml:"constraints,omitempty"`

	// Description provides human-readable documentation for this field.
	Description string `yaml:"description,omitempty"`
}

// FieldType represents the type of a schema field.
type FieldType string

const (
	// Primitive types
	FieldTypeString    FieldType = "string"
	FieldTypeInt       FieldType = "int"
	FieldTypeFloat     FieldType = "float"
	FieldTypeBool      FieldType = "bool"
	FieldTypeTimestamp FieldType = "timestamp"

	// Semantic types (string with validation)
	FieldTypeEmail FieldType = "email"
)

// IsNumeric reports whether values of this type are compared numerically.
func (t FieldType) IsNumeric() bool {
	return t == FieldTypeInt || t == FieldTypeFloat
}

// DefaultValue returns the value an absent optional field takes.
// Required fields have no default and return nil, false.
func (f Field) DefaultValue() (any, bool) {
	if f.Required {
		return nil, false
	}
	v, _ := f.Default.Get()
	return v, true
}

// Bounds returns the inclusive numeric range declared through min/max
// constraints. Missing bounds are reported as nil.
func (f Field) Bounds() (min, max *float64) {
	for _, c := range f.Constraints {
		n, err := toFloat64(c.Value)
		if err != nil {
			continue
		}
		switch c.Type {
		case ConstraintMin:
			min = &n
		case ConstraintMax:
			max = &n
		}
	}
	return min, max
}

// isValidFieldType checks if a field type is valid.
func isValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeString, FieldTypeInt, FieldTypeFloat, FieldTypeBool,
		FieldTypeTimestamp, FieldTypeEmail:
		return true
	default:
		return false
	}
}

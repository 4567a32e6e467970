package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFile parses schema definitions from a YAML file.
func ParseFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	defs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Parse parses schema definitions from YAML bytes.
// Every definition is checked with Validate.
func Parse(data []byte) ([]Definition, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if len(doc.Schemas) == 0 {
		return nil, fmt.Errorf("no schemas declared")
	}

	for _, def := range doc.Schemas {
		if err := Validate(def); err != nil {
			return nil, fmt.Errorf("validate schema %q: %w", def.Name, err)
		}
	}

	return doc.Schemas, nil
}

// ParseDir parses all schema files from a directory, including subdirectories.
func ParseDir(dir string) ([]Definition, error) {
	var defs []Definition

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			sub, err := ParseDir(path)
			if err != nil {
				return nil, err
			}
			defs = append(defs, sub...)
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		parsed, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, parsed...)
	}

	return defs, nil
}

// Validate checks a schema definition for internal consistency.
func Validate(def Definition) error {
	var errs []string

	if !isValidIdentifier(def.Name) {
		errs = append(errs, fmt.Sprintf("schema name %q is not a valid identifier", def.Name))
	}

	if len(def.Fields) == 0 {
		errs = append(errs, "schema must have at least one field")
	}

	seen := make(map[string]bool, len(def.Fields))
	for _, field := range def.Fields {
		if !isValidIdentifier(field.Name) {
			errs = append(errs, fmt.Sprintf("field name %q is not a valid identifier", field.Name))
		}
		if seen[field.Name] {
			errs = append(errs, fmt.Sprintf("field %q declared more than once", field.Name))
		}
		seen[field.Name] = true

		if err := validateField(field); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// validateField validates a single field definition.
func validateField(field Field) error {
	name := field.Name

	if !isValidFieldType(field.Type) {
		return fmt.Errorf("field %q: unknown type %q", name, field.Type)
	}

	if field.Required && field.Default.IsSet() {
		return fmt.Errorf("field %q: required fields cannot declare a default", name)
	}

	if field.Required && field.Nullable {
		return fmt.Errorf("field %q: required fields cannot be nullable", name)
	}

	// An absent optional field without a default becomes null.
	if !field.Required && !field.Nullable && !field.Default.IsSet() {
		return fmt.Errorf("field %q: optional non-nullable field needs a default", name)
	}

	var min, max *float64
	for _, c := range field.Constraints {
		if err := validateConstraintDef(field, c); err != nil {
			return err
		}
		n, _ := toFloat64(c.Value)
		switch c.Type {
		case ConstraintMin:
			min = &n
		case ConstraintMax:
			max = &n
		}
	}
	if min != nil && max != nil && *min > *max {
		return fmt.Errorf("field %q: min %v exceeds max %v", name, *min, *max)
	}

	if v, ok := field.Default.Get(); ok && v != nil {
		if err := validateDefault(field, v); err != nil {
			return err
		}
	}

	return nil
}

// validateConstraintDef checks that a constraint fits its field.
func validateConstraintDef(field Field, c Constraint) error {
	name := field.Name
	switch c.Type {
	case ConstraintMin, ConstraintMax:
		if !field.Type.IsNumeric() {
			return fmt.Errorf("field %q: %s requires a numeric field", name, c.Type)
		}
		if _, err := toFloat64(c.Value); err != nil {
			return fmt.Errorf("field %q: %s value must be a number", name, c.Type)
		}
	case ConstraintMinLength, ConstraintMaxLength:
		if field.Type != FieldTypeString && field.Type != FieldTypeEmail {
			return fmt.Errorf("field %q: %s requires a string field", name, c.Type)
		}
		if n, err := toInt(c.Value); err != nil || n < 0 {
			return fmt.Errorf("field %q: %s value must be a non-negative integer", name, c.Type)
		}
	case ConstraintPattern:
		pattern, ok := c.Value.(string)
		if !ok {
			return fmt.Errorf("field %q: pattern value must be a string", name)
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("field %q: invalid pattern: %w", name, err)
		}
	case ConstraintOneOf:
		if len(oneOfValues(c.Value)) == 0 {
			return fmt.Errorf("field %q: one_of requires a non-empty list", name)
		}
	default:
		return fmt.Errorf("field %q: unknown constraint %q", name, c.Type)
	}
	return nil
}

// validateDefault checks that a default converts to the field type the same
// way an input value would, and satisfies the field's own constraints.
func validateDefault(field Field, v any) error {
	name := field.Name
	typed, err := Coerce(field.Type, v)
	if err != nil {
		msg := err.Error()
		var ce *CoercionError
		if errors.As(err, &ce) {
			msg = ce.Message
		}
		return fmt.Errorf("field %q: default %s", name, msg)
	}

	for _, c := range field.Constraints {
		if cerr := ValidateConstraint(name, typed, c); cerr != nil {
			return fmt.Errorf("field %q: default %v violates %s: %s", name, v, c.Type, cerr.Message)
		}
	}
	return nil
}

// isValidIdentifier checks if a string is a valid identifier.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		if i == 0 {
			if !isLetter(c) && c != '_' {
				return false
			}
		} else {
			if !isLetter(c) && !isDigit(c) && c != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

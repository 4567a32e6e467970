package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Constraint defines a validation rule for a field.
type Constraint struct {
	// Type is the constraint type (min, max, min_length, max_length, pattern, one_of)
	Type ConstraintType `yaml:"type" json:"type"`

	// Value is the constraint parameter (number, regex pattern, list of values).
	Value any `yaml:"value" json:"value"`

	// Message is the custom error message (optional).
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// ConstraintType identifies the type of constraint.
type ConstraintType string

const (
	// Numeric constraints, both inclusive
	ConstraintMin ConstraintType = "min"
	ConstraintMax ConstraintType = "max"

	// String constraints
	ConstraintMinLength ConstraintType = "min_length" // Minimum length in characters
	ConstraintMaxLength ConstraintType = "max_length" // Maximum length in characters
	ConstraintPattern   ConstraintType = "pattern"    // Regex pattern match

	// Enumerations
	ConstraintOneOf ConstraintType = "one_of"
)

// IsRange reports whether the constraint bounds a numeric value.
func (t ConstraintType) IsRange() bool {
	return t == ConstraintMin || t == ConstraintMax
}

// ConstraintError represents a single constraint violation.
type ConstraintError struct {
	Field      string         `json:"field"`
	Constraint ConstraintType `json:"constraint"`
	Value      any            `json:"value,omitempty"`
	Message    string         `json:"message"`
}

func (e ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConstraint validates a value against a single constraint.
// The value is expected to be already coerced to the field's type.
// This is a PURE function.
func ValidateConstraint(fieldName string, value any, c Constraint) *ConstraintError {
	switch c.Type {
	case ConstraintMin:
		return validateMin(fieldName, value, c)
	case ConstraintMax:
		return validateMax(fieldName, value, c)
	case ConstraintMinLength:
		return validateMinLength(fieldName, value, c)
	case ConstraintMaxLength:
		return validateMaxLength(fieldName, value, c)
	case ConstraintPattern:
		return validatePattern(fieldName, value, c)
	case ConstraintOneOf:
		return validateOneOf(fieldName, value, c)
	default:
		return nil
	}
}

func validateMin(field string, value any, c Constraint) *ConstraintError {
	min, err := toFloat64(c.Value)
	if err != nil {
		return nil
	}

	val, err := toFloat64(value)
	if err != nil {
		return nil
	}

	if val < min {
		return &ConstraintError{Field: field, Constraint: c.Type, Value: value,
			Message: messageOr(c, fmt.Sprintf("must be at least %v", min))}
	}
	return nil
}

func validateMax(field string, value any, c Constraint) *ConstraintError {
	max, err := toFloat64(c.Value)
	if err != nil {
		return nil
	}

	val, err := toFloat64(value)
	if err != nil {
		return nil
	}

	if val > max {
		return &ConstraintError{Field: field, Constraint: c.Type, Value: value,
			Message: messageOr(c, fmt.Sprintf("must be at most %v", max))}
	}
	return nil
}

func validateMinLength(field string, value any, c Constraint) *ConstraintError {
	minLen, err := toInt(c.Value)
	if err != nil {
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return nil
	}

	if n := utf8.RuneCountInString(str); n < minLen {
		return &ConstraintError{Field: field, Constraint: c.Type, Value: n,
			Message: messageOr(c, fmt.Sprintf("must be at least %d characters", minLen))}
	}
	return nil
}

func validateMaxLength(field string, value any, c Constraint) *ConstraintError {
	maxLen, err := toInt(c.Value)
	if err != nil {
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return nil
	}

	if n := utf8.RuneCountInString(str); n > maxLen {
		return &ConstraintError{Field: field, Constraint: c.Type, Value: n,
			Message: messageOr(c, fmt.Sprintf("must be at most %d characters", maxLen))}
	}
	return nil
}

func validatePattern(field string, value any, c Constraint) *ConstraintError {
	pattern, ok := c.Value.(string)
	if !ok {
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil // rejected when the schema is checked
	}

	if !re.MatchString(str) {
		return &ConstraintError{Field: field, Constraint: c.Type, Value: value,
			Message: messageOr(c, "does not match required pattern")}
	}
	return nil
}

func validateOneOf(field string, value any, c Constraint) *ConstraintError {
	allowed := oneOfValues(c.Value)
	if allowed == nil {
		return nil
	}

	strVal := fmt.Sprintf("%v", value)
	for _, a := range allowed {
		if a == strVal {
			return nil
		}
	}

	return &ConstraintError{Field: field, Constraint: c.Type, Value: value,
		Message: messageOr(c, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))}
}

// oneOfValues normalizes a one_of parameter to its string forms.
func oneOfValues(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, len(vals))
		for i, a := range vals {
			out[i] = fmt.Sprintf("%v", a)
		}
		return out
	default:
		return nil
	}
}

func messageOr(c Constraint, fallback string) string {
	if c.Message != "" {
		return c.Message
	}
	return fallback
}

// toFloat64 converts various numeric types to float64.
func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", v)
	}
}

// toInt converts various types to int.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}

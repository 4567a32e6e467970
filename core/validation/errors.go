package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindUnknownSchema Kind = "unknown_schema"
	KindMissingField  Kind = "missing_field"
	KindOutOfRange    Kind = "out_of_range"
	KindInvalidFormat Kind = "invalid_format"
	KindUnknownField  Kind = "unknown_field"
)

// Sentinel errors for errors.Is matching on a failure kind.
var (
	ErrUnknownSchema = errors.New("unknown schema")
	ErrMissingField  = errors.New("missing field")
	ErrOutOfRange    = errors.New("out of range")
	ErrInvalidFormat = errors.New("invalid format")
	ErrUnknownField  = errors.New("unknown field")
)

func (k Kind) sentinel() error {
	switch k {
	case KindUnknownSchema:
		return ErrUnknownSchema
	case KindMissingField:
		return ErrMissingField
	case KindOutOfRange:
		return ErrOutOfRange
	case KindInvalidFormat:
		return ErrInvalidFormat
	case KindUnknownField:
		return ErrUnknownField
	default:
		return nil
	}
}

// FieldError is a single validation failure.
// Field is empty for KindUnknownSchema.
type FieldError struct {
	Kind    Kind     `json:"kind"`
	Schema  string   `json:"schema"`
	Field   string   `json:"field,omitempty"`
	Value   any      `json:"value,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Message string   `json:"message"`

	// Err is the underlying cause, such as a time parse error.
	Err error `json:"-"`
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is matches the sentinel for the error's kind.
func (e *FieldError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError collects every failure for one record.
// It is returned by ValidateAll.
type ValidationError struct {
	Schema string        `json:"schema"`
	Errors []*FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("%s: %s", e.Schema, strings.Join(msgs, "; "))
}

// Unwrap exposes the contained field errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		out[i] = fe
	}
	return out
}

// Fields returns the names of failing fields in report order.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		out[i] = fe.Field
	}
	return out
}

// FieldErrors flattens err into its field errors.
// It returns nil if err holds none.
func FieldErrors(err error) []*FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Errors
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return []*FieldError{fe}
	}
	return nil
}

func unknownSchema(name string) *FieldError {
	return &FieldError{
		Kind:    KindUnknownSchema,
		Schema:  name,
		Message: fmt.Sprintf("unknown schema %q", name),
	}
}

func missingField(schemaName, field string) *FieldError {
	return &FieldError{
		Kind:    KindMissingField,
		Schema:  schemaName,
		Field:   field,
		Message: "field is required",
	}
}

func unknownField(schemaName, field string, value any) *FieldError {
	return &FieldError{
		Kind:    KindUnknownField,
		Schema:  schemaName,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("unknown field '%s' - not defined in schema", field),
	}
}

func invalidFormat(schemaName, field string, value any, msg string, cause error) *FieldError {
	return &FieldError{
		Kind:    KindInvalidFormat,
		Schema:  schemaName,
		Field:   field,
		Value:   value,
		Message: msg,
		Err:     cause,
	}
}

func outOfRange(schemaName, field string, value any, min, max *float64) *FieldError {
	var msg string
	switch {
	case min != nil && max != nil:
		msg = fmt.Sprintf("must be between %v and %v", *min, *max)
	case min != nil:
		msg = fmt.Sprintf("must be at least %v", *min)
	case max != nil:
		msg = fmt.Sprintf("must be at most %v", *max)
	default:
		msg = "out of range"
	}
	return &FieldError{
		Kind:    KindOutOfRange,
		Schema:  schemaName,
		Field:   field,
		Value:   value,
		Min:     min,
		Max:     max,
		Message: msg,
	}
}

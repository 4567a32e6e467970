// Package validation checks raw field maps against schema definitions
// and produces typed, ordered records.
//
// A Validator only reads its registry, so one instance may be shared
// across goroutines.
package validation

import (
	"errors"
	"sort"

	"github.com/artpar/docschema/core/convention"
	"github.com/artpar/docschema/core/registry"
	"github.com/artpar/docschema/core/schema"
)

// Options tune validation behavior.
type Options struct {
	// RejectUnknown reports input keys the schema does not declare.
	// By default they are dropped from the record.
	RejectUnknown bool
}

// Validator validates input data against registered schemas.
type Validator struct {
	registry *registry.Registry
	opts     Options
}

// New creates a new validator over the given registry.
func New(reg *registry.Registry, opts Options) *Validator {
	return &Validator{
		registry: reg,
		opts:     opts,
	}
}

// Validate checks raw against the named schema and stops at the first failure.
// The returned error is a *FieldError.
func (v *Validator) Validate(schemaName string, raw map[string]any) (Record, error) {
	rec, errs := v.run(schemaName, raw, false)
	if len(errs) > 0 {
		return Record{}, errs[0]
	}
	return rec, nil
}

// ValidateAll checks every field and reports all failures at once.
// The returned error is a *ValidationError, except for an unknown schema,
// which is reported as a *FieldError.
func (v *Validator) ValidateAll(schemaName string, raw map[string]any) (Record, error) {
	rec, errs := v.run(schemaName, raw, true)
	if len(errs) == 0 {
		return rec, nil
	}
	if errs[0].Kind == KindUnknownSchema {
		return Record{}, errs[0]
	}
	return Record{}, &ValidationError{Schema: errs[0].Schema, Errors: errs}
}

// run walks the schema's fields in declared order. Unknown input keys are
// checked last. Without collect it returns at the first failure.
func (v *Validator) run(schemaName string, raw map[string]any, collect bool) (Record, []*FieldError) {
	d, ok := v.registry.Get(schemaName)
	if !ok {
		return Record{}, []*FieldError{unknownSchema(schemaName)}
	}

	rec := Record{
		Schema:     d.Name(),
		Collection: d.Collection,
		fields:     make([]FieldValue, 0, len(d.Fields)),
	}

	var errs []*FieldError
	for _, f := range d.Fields {
		value, present := raw[f.Name]
		typed, ferr := checkField(d.Name(), f, value, present)
		if ferr != nil {
			errs = append(errs, ferr)
			if !collect {
				return Record{}, errs
			}
			continue
		}
		rec.set(f.Name, typed)
	}

	if v.opts.RejectUnknown {
		for _, key := range unknownKeys(d, raw) {
			errs = append(errs, unknownField(d.Name(), key, raw[key]))
			if !collect {
				return Record{}, errs
			}
		}
	}

	if len(errs) > 0 {
		return Record{}, errs
	}
	return rec, nil
}

// checkField validates one field. present is false when the key is absent.
func checkField(schemaName string, f schema.Field, value any, present bool) (any, *FieldError) {
	if !present || value == nil {
		if f.Required {
			return nil, missingField(schemaName, f.Name)
		}
		if present && !f.Nullable {
			return nil, invalidFormat(schemaName, f.Name, nil, "must not be null", nil)
		}
		if present {
			return nil, nil
		}
		def, _ := f.DefaultValue()
		if def == nil {
			return nil, nil
		}
		value = def
	}

	typed, err := schema.Coerce(f.Type, value)
	if err != nil {
		return nil, coercionFailure(schemaName, f, value, err)
	}

	for _, c := range f.Constraints {
		cerr := schema.ValidateConstraint(f.Name, typed, c)
		if cerr == nil {
			continue
		}
		if c.Type.IsRange() {
			min, max := f.Bounds()
			return nil, outOfRange(schemaName, f.Name, typed, min, max)
		}
		return nil, invalidFormat(schemaName, f.Name, typed, cerr.Message, nil)
	}

	return typed, nil
}

// coercionFailure classifies a failed conversion. A whole number too large
// for an int64 is still range-checked against the field's bounds.
func coercionFailure(schemaName string, f schema.Field, value any, err error) *FieldError {
	var ov *schema.OverflowError
	if errors.As(err, &ov) {
		min, max := f.Bounds()
		if (min != nil && ov.Value < *min) || (max != nil && ov.Value > *max) {
			return outOfRange(schemaName, f.Name, value, min, max)
		}
	}
	msg := err.Error()
	var ce *schema.CoercionError
	if errors.As(err, &ce) {
		msg = ce.Message
	}
	return invalidFormat(schemaName, f.Name, value, msg, err)
}

// unknownKeys returns input keys the schema does not declare, sorted.
func unknownKeys(d convention.Derived, raw map[string]any) []string {
	var keys []string
	for key := range raw {
		if !d.HasField(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// ValidateField validates a single value against a field specification.
// A nil value is treated as absent. This is useful for partial validation.
func ValidateField(f schema.Field, value any) (any, error) {
	typed, ferr := checkField("", f, value, value != nil)
	if ferr != nil {
		return nil, ferr
	}
	return typed, nil
}

package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Optional is a value that may be unset.
// The zero value is unset.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an unset Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the held value and whether it is set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is held.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// String renders the value, or "null" when unset.
func (o Optional[T]) String() string {
	if !o.set {
		return "null"
	}
	return fmt.Sprintf("%v", o.value)
}

// UnmarshalYAML decodes a present YAML value into a set Optional.
// A YAML null never reaches here and leaves the Optional unset.
func (o *Optional[T]) UnmarshalYAML(node *yaml.Node) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	o.value = v
	o.set = true
	return nil
}

// Package registry holds the set of known schemas, keyed by collection.
// A Registry is built once and never modified, so it is safe for
// concurrent use without locking.
package registry

import (
	"fmt"

	"github.com/artpar/docschema/core/convention"
	"github.com/artpar/docschema/core/schema"
)

// Registry maps collection identifiers to derived schemas.
type Registry struct {
	// schemas by collection
	schemas map[string]convention.Derived

	// collections in registration order
	order []string
}

// New builds a registry from schema definitions.
// Each definition is checked, and two schemas may not share a collection.
func New(defs ...schema.Definition) (*Registry, error) {
	r := &Registry{
		schemas: make(map[string]convention.Derived, len(defs)),
		order:   make([]string, 0, len(defs)),
	}

	for _, def := range defs {
		if err := schema.Validate(def); err != nil {
			return nil, fmt.Errorf("schema %q: %w", def.Name, err)
		}

		derived := convention.Derive(def)

		if existing, exists := r.schemas[derived.Collection]; exists {
			return nil, fmt.Errorf("collection %q already claimed by schema %q", derived.Collection, existing.Name())
		}

		r.schemas[derived.Collection] = derived
		r.order = append(r.order, derived.Collection)
	}

	return r, nil
}

// MustNew is like New but panics on error.
// Use it only for schemas compiled into the binary.
func MustNew(defs ...schema.Definition) *Registry {
	r, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns a schema by declared name or collection identifier.
// Lookup is case-insensitive.
func (r *Registry) Get(name string) (convention.Derived, bool) {
	d, ok := r.schemas[convention.Collection(name)]
	return d, ok
}

// List returns all schemas in registration order.
func (r *Registry) List() []convention.Derived {
	out := make([]convention.Derived, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, r.schemas[c])
	}
	return out
}

// Collections returns collection identifiers in registration order.
func (r *Registry) Collections() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	return len(r.order)
}

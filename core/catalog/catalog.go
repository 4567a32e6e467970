// Package catalog declares the built-in record schemas.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/artpar/docschema/core/registry"
	"github.com/artpar/docschema/core/schema"
)

// Schema names.
const (
	User    = "User"
	Product = "Product"
	Program = "Program"
	Event   = "Event"
	Inquiry = "Inquiry"
)

//go:embed schemas.yaml
var source []byte

var (
	loadOnce sync.Once
	defs     []schema.Definition
	reg      *registry.Registry
	loadErr  error
)

func load() {
	defs, loadErr = schema.Parse(source)
	if loadErr != nil {
		loadErr = fmt.Errorf("built-in schemas: %w", loadErr)
		return
	}
	reg, loadErr = registry.New(defs...)
	if loadErr != nil {
		loadErr = fmt.Errorf("built-in schemas: %w", loadErr)
	}
}

// Definitions returns a copy of the built-in schema definitions in declared order.
func Definitions() ([]schema.Definition, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]schema.Definition, len(defs))
	copy(out, defs)
	return out, nil
}

// Registry returns the registry of built-in schemas.
// The registry is built on first use and shared afterwards.
func Registry() (*registry.Registry, error) {
	loadOnce.Do(load)
	return reg, loadErr
}

// MustRegistry is like Registry but panics if the embedded schemas are invalid.
func MustRegistry() *registry.Registry {
	r, err := Registry()
	if err != nil {
		panic(err)
	}
	return r
}

// Source returns the raw YAML the built-in schemas are declared in.
func Source() []byte {
	out := make([]byte, len(source))
	copy(out, source)
	return out
}

// RegistryWith builds a registry holding the built-in schemas followed by
// extra. An extra schema may not reuse a built-in collection.
func RegistryWith(extra ...schema.Definition) (*registry.Registry, error) {
	if len(extra) == 0 {
		return Registry()
	}
	builtin, err := Definitions()
	if err != nil {
		return nil, err
	}
	return registry.New(append(builtin, extra...)...)
}

// LoadDir builds a registry from the built-in schemas plus every YAML
// definition under dir. An empty dir yields the built-in registry.
func LoadDir(dir string) (*registry.Registry, error) {
	if dir == "" {
		return Registry()
	}
	extra, err := schema.ParseDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load schemas from %s: %w", dir, err)
	}
	return RegistryWith(extra...)
}

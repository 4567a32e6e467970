// Package formatter provides a pluggable output formatting system.
// Formatters render validated records and validation failures as
// table, json or yaml.
package formatter

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/artpar/docschema/core/convention"
	"github.com/artpar/docschema/core/validation"
)

// Formatter converts validation output to a specific format.
type Formatter interface {
	// Name returns the formatter name (e.g., "table", "json", "yaml").
	Name() string

	// Description returns a human-readable description.
	Description() string

	// FormatRecords formats validated records of one schema.
	FormatRecords(w io.Writer, d convention.Derived, records []validation.Record, opts FormatOptions) error

	// FormatErrors formats field failures.
	FormatErrors(w io.Writer, errs []*validation.FieldError, opts FormatOptions) error
}

// FormatOptions configures formatting behavior.
type FormatOptions struct {
	// Columns specifies which fields to include (nil = all).
	Columns []string

	// NoHeader disables header row for tabular formats.
	NoHeader bool

	// Compact minimizes whitespace (for json).
	Compact bool

	// MaxWidth truncates long values (0 = no limit).
	MaxWidth int
}

// Registry manages registered formatters.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
	defaultFmt string
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
		defaultFmt: "table",
	}
}

// Register adds a formatter to the registry.
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Name()]; exists {
		return fmt.Errorf("formatter %q already registered", f.Name())
	}

	r.formatters[f.Name()] = f
	return nil
}

// Get returns a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[name]
	return f, ok
}

// Default returns the default formatter.
func (r *Registry) Default() Formatter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.formatters[r.defaultFmt]
}

// List returns all registered formatter names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter to the default registry.
func Register(f Formatter) error {
	return DefaultRegistry.Register(f)
}

// Get returns a formatter from the default registry.
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// Default returns the default formatter from the default registry.
func Default() Formatter {
	return DefaultRegistry.Default()
}

// List returns all formatter names from the default registry.
func List() []string {
	return DefaultRegistry.List()
}

// resolveColumns returns the requested columns, or every schema field.
func resolveColumns(d convention.Derived, requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	columns := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		columns[i] = f.Name
	}
	return columns
}

// project returns the record's values for columns, in column order.
// Columns the record lacks are skipped.
func project(rec validation.Record, columns []string) []validation.FieldValue {
	out := make([]validation.FieldValue, 0, len(columns))
	for _, col := range columns {
		if v, ok := rec.Get(col); ok {
			out = append(out, validation.FieldValue{Name: col, Value: v})
		}
	}
	return out
}

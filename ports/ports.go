// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/artpar/docschema/core/validation"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// -----------------------------------------------------------------------------
// Validation Ports
// -----------------------------------------------------------------------------

// RecordValidator turns raw field maps into validated records.
// *validation.Validator implements it.
type RecordValidator interface {
	// Validate stops at the first failure.
	Validate(schemaName string, raw map[string]any) (validation.Record, error)

	// ValidateAll reports every failure.
	ValidateAll(schemaName string, raw map[string]any) (validation.Record, error)
}

// RecordSink receives validated records for persistence.
// The collection is the lowercased schema name.
type RecordSink interface {
	Put(ctx context.Context, collection string, rec validation.Record) error
}

// -----------------------------------------------------------------------------
// Observability Ports
// -----------------------------------------------------------------------------

// Validation outcomes reported to ValidationMetrics.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// ValidationMetrics records validation activity.
type ValidationMetrics interface {
	// ObserveValidation records one validated input.
	ObserveValidation(schemaName, outcome string, d time.Duration)

	// ObserveFieldError records one field failure.
	ObserveFieldError(schemaName, field string, kind validation.Kind)

	// ObserveHandoff records a sink delivery attempt.
	ObserveHandoff(collection string, err error)
}

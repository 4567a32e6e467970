// Package app provides application services that orchestrate domain logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/docschema/adapters/clock"
	"github.com/artpar/docschema/adapters/metrics"
	"github.com/artpar/docschema/core/convention"
	"github.com/artpar/docschema/core/validation"
	"github.com/artpar/docschema/ports"
)

// unknownSchemaLabel is the metric label for names no schema matches.
const unknownSchemaLabel = "unknown"

// IntakeService validates incoming field maps and hands valid records
// to a sink.
type IntakeService struct {
	validator ports.RecordValidator
	sink      ports.RecordSink
	metrics   ports.ValidationMetrics
	clock     ports.Clock
	logger    zerolog.Logger

	collectAll bool
	stopOnSink bool
}

// IntakeDeps contains dependencies for IntakeService.
type IntakeDeps struct {
	Validator ports.RecordValidator
	Sink      ports.RecordSink        // optional; nil validates only
	Metrics   ports.ValidationMetrics // optional
	Clock     ports.Clock
	Logger    zerolog.Logger
}

// IntakeConfig contains configuration for IntakeService.
type IntakeConfig struct {
	// CollectAll reports every field failure instead of the first.
	CollectAll bool

	// StopOnSinkError aborts a batch when the sink fails.
	StopOnSinkError bool
}

// NewIntakeService creates a new intake service.
func NewIntakeService(deps IntakeDeps, cfg IntakeConfig) *IntakeService {
	m := deps.Metrics
	if m == nil {
		m = metrics.Nop{}
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	return &IntakeService{
		validator:  deps.Validator,
		sink:       deps.Sink,
		metrics:    m,
		clock:      clk,
		logger:     deps.Logger,
		collectAll: cfg.CollectAll,
		stopOnSink: cfg.StopOnSinkError,
	}
}

// Result is the outcome of one submitted input.
type Result struct {
	// Index is the input's position within its batch.
	Index int

	Record   validation.Record
	Err      error
	Duration time.Duration
}

// Valid reports whether the input passed validation.
func (r Result) Valid() bool {
	return r.Err == nil
}

// BatchResult summarizes a batch submission.
type BatchResult struct {
	Results []Result
	Valid   int
	Invalid int
}

// Failed returns the results that did not validate.
func (b BatchResult) Failed() []Result {
	var out []Result
	for _, r := range b.Results {
		if !r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// Submit validates one input. A validation failure is reported in
// Result.Err; the returned error is reserved for sink failures.
func (s *IntakeService) Submit(ctx context.Context, schemaName string, raw map[string]any) (Result, error) {
	res := s.check(schemaName, raw)
	if !res.Valid() || s.sink == nil {
		return res, nil
	}

	collection := res.Record.Collection
	err := s.sink.Put(ctx, collection, res.Record)
	s.metrics.ObserveHandoff(collection, err)
	if err != nil {
		s.logger.Error().Err(err).
			Str("collection", collection).
			Msg("record hand-off failed")
		return res, fmt.Errorf("hand off to %s: %w", collection, err)
	}
	return res, nil
}

// SubmitBatch validates each input in order. Validation failures never
// stop the batch. A sink failure stops it only with StopOnSinkError,
// in which case the partial result is returned with the error.
func (s *IntakeService) SubmitBatch(ctx context.Context, schemaName string, inputs []map[string]any) (BatchResult, error) {
	batch := BatchResult{Results: make([]Result, 0, len(inputs))}
	var firstErr error

	for i, raw := range inputs {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		res, err := s.Submit(ctx, schemaName, raw)
		res.Index = i
		batch.Results = append(batch.Results, res)
		if res.Valid() {
			batch.Valid++
		} else {
			batch.Invalid++
		}

		if err != nil {
			if s.stopOnSink {
				return batch, err
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	s.logger.Info().
		Str("schema", schemaName).
		Int("valid", batch.Valid).
		Int("invalid", batch.Invalid).
		Msg("batch validated")
	return batch, firstErr
}

func (s *IntakeService) check(schemaName string, raw map[string]any) Result {
	start := s.clock.Now()

	var (
		rec validation.Record
		err error
	)
	if s.collectAll {
		rec, err = s.validator.ValidateAll(schemaName, raw)
	} else {
		rec, err = s.validator.Validate(schemaName, raw)
	}

	res := Result{Record: rec, Err: err, Duration: s.clock.Now().Sub(start)}
	label := schemaLabel(schemaName, err)

	if err != nil {
		s.metrics.ObserveValidation(label, ports.OutcomeInvalid, res.Duration)
		for _, fe := range validation.FieldErrors(err) {
			s.metrics.ObserveFieldError(label, fe.Field, fe.Kind)
		}
		s.logger.Warn().Err(err).Str("schema", schemaName).Msg("record rejected")
		return res
	}

	s.metrics.ObserveValidation(label, ports.OutcomeValid, res.Duration)
	s.logger.Debug().
		Str("schema", rec.Schema).
		Int("fields", rec.Len()).
		Msg("record accepted")
	return res
}

// schemaLabel bounds the metric label set to known collections.
func schemaLabel(schemaName string, err error) string {
	if errors.Is(err, validation.ErrUnknownSchema) {
		return unknownSchemaLabel
	}
	return convention.Collection(schemaName)
}

// Package metrics provides Prometheus metrics collection for record validation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/artpar/docschema/core/validation"
)

// Collector holds all Prometheus metrics for docschema.
// It implements ports.ValidationMetrics.
type Collector struct {
	// Validation metrics
	ValidationsTotal   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
	FieldErrors        *prometheus.CounterVec

	// Hand-off metrics
	HandoffsTotal *prometheus.CounterVec
}

// New creates a new metrics collector registered with the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a new metrics collector with a custom registry.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docschema",
				Name:      "validations_total",
				Help:      "Total number of records validated",
			},
			[]string{"schema", "outcome"},
		),
		ValidationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "docschema",
				Name:      "validation_duration_seconds",
				Help:      "Time spent validating one record",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
			},
			[]string{"schema"},
		),
		FieldErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docschema",
				Name:      "field_errors_total",
				Help:      "Total number of field validation failures",
			},
			[]string{"schema", "field", "kind"},
		),
		HandoffsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docschema",
				Name:      "handoffs_total",
				Help:      "Total number of records handed to the sink",
			},
			[]string{"collection", "status"},
		),
	}
}

// ObserveValidation records one validated input.
func (c *Collector) ObserveValidation(schemaName, outcome string, d time.Duration) {
	c.ValidationsTotal.WithLabelValues(schemaName, outcome).Inc()
	c.ValidationDuration.WithLabelValues(schemaName).Observe(d.Seconds())
}

// ObserveFieldError records one field failure.
func (c *Collector) ObserveFieldError(schemaName, field string, kind validation.Kind) {
	c.FieldErrors.WithLabelValues(schemaName, field, string(kind)).Inc()
}

// ObserveHandoff records a sink delivery attempt.
func (c *Collector) ObserveHandoff(collection string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.HandoffsTotal.WithLabelValues(collection, status).Inc()
}

// Nop discards all observations.
type Nop struct{}

func (Nop) ObserveValidation(string, string, time.Duration)  {}
func (Nop) ObserveFieldError(string, string, validation.Kind) {}
func (Nop) ObserveHandoff(string, error)                      {}

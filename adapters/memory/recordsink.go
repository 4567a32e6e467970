// Package memory provides in-memory implementations of the ports.
package memory

import (
	"context"
	"sync"

	"github.com/artpar/docschema/core/validation"
)

// RecordSink is an in-memory implementation of ports.RecordSink.
// It keeps records per collection in arrival order.
type RecordSink struct {
	mu      sync.RWMutex
	records map[string][]validation.Record
}

// NewRecordSink creates an empty record sink.
func NewRecordSink() *RecordSink {
	return &RecordSink{
		records: make(map[string][]validation.Record),
	}
}

// Put appends a record to the collection.
func (s *RecordSink) Put(ctx context.Context, collection string, rec validation.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[collection] = append(s.records[collection], rec)
	return nil
}

// List returns the records stored for a collection.
func (s *RecordSink) List(collection string) []validation.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[collection]
	out := make([]validation.Record, len(recs))
	copy(out, recs)
	return out
}

// Count returns the number of records in a collection.
func (s *RecordSink) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records[collection])
}

// Total returns the number of records across all collections.
func (s *RecordSink) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, recs := range s.records {
		n += len(recs)
	}
	return n
}

// Package sink writes validated records to an io.Writer.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/artpar/docschema/core/validation"
)

// Line is one encoded record.
type Line struct {
	Collection string            `json:"collection"`
	Record     validation.Record `json:"record"`
}

// JSONLines implements ports.RecordSink by writing one JSON object per line.
// It is meant for tooling output, not storage.
type JSONLines struct {
	mu  sync.Mutex
	enc *json.Encoder
	n   int
}

// NewJSONLines creates a sink writing to w.
func NewJSONLines(w io.Writer) *JSONLines {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLines{enc: enc}
}

// Put encodes the record as a single line.
func (s *JSONLines) Put(ctx context.Context, collection string, rec validation.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enc.Encode(Line{Collection: collection, Record: rec}); err != nil {
		return fmt.Errorf("encode %s record: %w", collection, err)
	}
	s.n++
	return nil
}

// Written returns the number of records written.
func (s *JSONLines) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

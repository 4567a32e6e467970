// Package clock provides Clock implementations.
package clock

import (
	"sync"
	"time"
)

// Real returns the actual current time.
type Real struct{}

// Now returns the current time.
func (Real) Now() time.Time {
	return time.Now()
}

// Stepping is a deterministic clock for tests.
// Every call to Now advances it by a fixed step, so consecutive
// readings measure exactly one step of elapsed time.
type Stepping struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewStepping creates a stepping clock starting at start.
func NewStepping(start time.Time, step time.Duration) *Stepping {
	return &Stepping{current: start, step: step}
}

// Now returns the current reading and advances by one step.
func (s *Stepping) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.current
	s.current = s.current.Add(s.step)
	return t
}

// Peek returns the next reading without advancing.
func (s *Stepping) Peek() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

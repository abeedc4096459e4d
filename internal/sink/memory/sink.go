// Package memory provides an in-process sink used in tests and dry
// runs where no external store is available.
package memory

import (
	"context"
	"sync"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

// Sink keeps the latest record per ID in a map. Safe for concurrent
// use.
type Sink struct {
	mu      sync.RWMutex
	records map[string]jobs.Record
}

// New returns an empty Sink.
func New() *Sink {
	return &Sink{records: make(map[string]jobs.Record)}
}

// Name identifies the sink.
func (s *Sink) Name() string { return "memory" }

// Write stores the record, replacing any previous version with the
// same ID.
func (s *Sink) Write(_ context.Context, rec jobs.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// Get returns the stored record for id, if any.
func (s *Sink) Get(id string) (jobs.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Len reports how many distinct records have been written.
func (s *Sink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close is a no-op.
func (s *Sink) Close(_ context.Context) error { return nil }

// Package memory provides in-memory implementations of driven port
// interfaces for testing and single-shot runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
)

// Ensure SeenStore implements the interface.
var _ driven.SeenStore = (*SeenStore)(nil)

// SeenStore is an in-memory implementation of driven.SeenStore.
// Dedup state does not survive the process; use the sqlite store when
// runs must not re-emit filings across restarts.
type SeenStore struct {
	mu   sync.RWMutex
	seen map[string]time.Time
}

// NewSeenStore creates a new in-memory seen store.
func NewSeenStore() *SeenStore {
	return &SeenStore{
		seen: make(map[string]time.Time),
	}
}

// Seen reports whether an accession number has been recorded.
func (s *SeenStore) Seen(_ context.Context, accession string) (bool, error) {
	if accession == "" {
		return false, domain.ErrInvalidInput
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[accession]
	return ok, nil
}

// MarkSeen records an accession number for a business day.
func (s *SeenStore) MarkSeen(_ context.Context, accession string, day time.Time) error {
	if accession == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[accession]; !ok {
		s.seen[accession] = day
	}
	return nil
}

// Prune removes entries recorded for days before the given day.
func (s *SeenStore) Prune(_ context.Context, before time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for accession, day := range s.seen {
		if day.Before(before) {
			delete(s.seen, accession)
		}
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (s *SeenStore) Close() error {
	return nil
}

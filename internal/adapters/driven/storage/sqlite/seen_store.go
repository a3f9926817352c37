package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
)

// dayFormat is how business days are stored; date-only so Prune
// comparisons are lexicographic.
const dayFormat = "2006-01-02"

// seenStore implements driven.SeenStore.
type seenStore struct {
	store *Store
}

var _ driven.SeenStore = (*seenStore)(nil)

// Seen reports whether an accession number has been recorded.
func (s *seenStore) Seen(ctx context.Context, accession string) (bool, error) {
	if accession == "" {
		return false, domain.ErrInvalidInput
	}

	var one int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT 1 FROM seen_filings WHERE accession_number = ?", accession).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("querying seen filing: %w", err)
}

// MarkSeen records an accession number for a business day.
// Recording an already-seen accession is a no-op.
func (s *seenStore) MarkSeen(ctx context.Context, accession string, day time.Time) error {
	if accession == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO seen_filings (accession_number, business_day, recorded_at)
		VALUES (?, ?, ?)
		ON CONFLICT(accession_number) DO NOTHING
	`, accession, day.Format(dayFormat), time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("marking filing seen: %w", err)
	}
	return nil
}

// Prune removes entries recorded for days before the given day.
func (s *seenStore) Prune(ctx context.Context, before time.Time) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM seen_filings WHERE business_day < ?", before.Format(dayFormat))
	if err != nil {
		return fmt.Errorf("pruning seen filings: %w", err)
	}
	return nil
}

// Close is a no-op; the shared Store owns the connection.
func (s *seenStore) Close() error {
	return nil
}

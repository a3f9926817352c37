package driven

import (
	"context"
	"time"
)

// SeenStore persists accession numbers across pipeline runs.
// It is the dedup collaborator: the pipeline skips filings whose accession
// number has already been recorded.
type SeenStore interface {
	// Seen reports whether an accession number has been recorded.
	Seen(ctx context.Context, accession string) (bool, error)

	// MarkSeen records an accession number with the business day it was
	// processed for. Recording an already-seen accession is not an error.
	MarkSeen(ctx context.Context, accession string, day time.Time) error

	// Prune removes entries older than the given day.
	Prune(ctx context.Context, before time.Time) error

	// Close releases resources.
	Close() error
}

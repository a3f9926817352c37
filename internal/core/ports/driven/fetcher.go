package driven

import (
	"context"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

// ContentFetcher retrieves the raw content of a single filing.
//
// Implementations must rate-limit aggregate request volume against the
// source: the limiter is shared across all pipeline workers, not
// per-worker. Transient failures (timeouts, 5xx) are retried with
// backoff; a missing document is domain.ErrContentNotFound and an
// exhausted retry budget is domain.ErrFetchTimeout.
type ContentFetcher interface {
	// Fetch retrieves the filing content for a reference.
	Fetch(ctx context.Context, ref domain.FilingReference) (*domain.RawFiling, error)

	// ResolvePrimaryDocument maps a fetched .txt submission to the URL of
	// its primary .htm document for provenance links. Falls back to the
	// submission URL when no primary document can be identified.
	ResolvePrimaryDocument(raw *domain.RawFiling) string
}

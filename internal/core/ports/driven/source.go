package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

// FilingSource lists the filings a market published on a given business day.
type FilingSource interface {
	// Market returns the source market identifier (e.g., "sec-edgar").
	Market() string

	// ListFilings returns the day's filings whose form type is in forms,
	// in index order. An empty forms slice matches every form type.
	//
	// A day with no published index (weekend, holiday) is a success with
	// an empty result. The index being unreachable after retries is
	// domain.ErrSourceUnavailable; an index that was retrieved but cannot
	// be parsed is domain.ErrMalformedIndex.
	ListFilings(ctx context.Context, day time.Time, forms []string) ([]domain.FilingReference, error)
}

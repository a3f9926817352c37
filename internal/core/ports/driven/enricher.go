package driven

import (
	"context"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

// Enricher maps a filer id to its listing context.
type Enricher interface {
	// Enrich looks up ticker and exchange for a CIK. A miss returns a
	// zero Listing and no error; ticker and exchange are optional fields
	// on the output record.
	Enrich(ctx context.Context, cik string) (domain.Listing, error)
}

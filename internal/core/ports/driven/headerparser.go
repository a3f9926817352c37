package driven

import (
	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

// HeaderParser extracts structured metadata from a filing's header block.
type HeaderParser interface {
	// Parse extracts the five required header fields. A missing required
	// field fails with *domain.HeaderParseError naming that field; the
	// parser never returns partial results.
	Parse(raw *domain.RawFiling) (domain.HeaderFields, error)
}

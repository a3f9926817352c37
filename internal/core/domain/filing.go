package domain

import (
	"path"
	"strings"
	"time"
)

// FilingReference is a lightweight pointer to one filing in a daily index.
// It is immutable: created by the source connector, consumed by the fetcher.
type FilingReference struct {
	// Market identifies the source market (e.g., "sec-edgar").
	Market string

	// CIK is the filer's Central Index Key, as it appears in the index
	// (no zero padding).
	CIK string

	// CompanyName is the company name column from the index.
	CompanyName string

	// FormType is the submission type (e.g., "8-K").
	FormType string

	// FilingDate is the date the filing was submitted.
	FilingDate time.Time

	// Path is the content location relative to the market's archive root
	// (e.g., "edgar/data/320193/0000320193-24-000001.txt").
	Path string
}

// AccessionNumber derives the filing's accession number from its path.
// The accession number is globally unique within a market and is the
// dedup key across pipeline runs.
func (r FilingReference) AccessionNumber() string {
	base := path.Base(r.Path)
	return strings.TrimSuffix(base, ".txt")
}

// RawFiling is the fetched content of a single filing. It lives only for
// the duration of a pipeline run and is discarded after parsing.
type RawFiling struct {
	// Ref is the reference this content was fetched for.
	Ref FilingReference

	// Content is the raw submission text (SGML header plus body).
	Content []byte

	// SourceURL is the absolute URL the content was retrieved from.
	SourceURL string

	// FetchedAt is when the content was retrieved.
	FetchedAt time.Time
}

// HeaderFields holds the structured metadata extracted from a filing's
// header block. All fields are required; the parser fails naming the
// missing field rather than returning partial results.
type HeaderFields struct {
	// CompanyName is the filer's conformed company name.
	CompanyName string

	// CIK is the filer's Central Index Key.
	CIK string

	// FormType is the conformed submission type.
	FormType string

	// FilingDate is the "filed as of" date.
	FilingDate time.Time

	// AccessionNumber is the submission's accession number.
	AccessionNumber string
}

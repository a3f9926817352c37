package domain

import "time"

// EventCategory classifies the corporate action disclosed by a filing.
type EventCategory string

// Known event categories, in priority order. When a filing matches several
// categories, they are reported in this order regardless of where in the
// text each match occurred.
const (
	// CategoryMerger covers mergers, acquisitions, and business combinations.
	CategoryMerger EventCategory = "merger_acquisition"

	// CategoryDividend covers cash dividends and other distributions.
	CategoryDividend EventCategory = "dividend_distribution"

	// CategorySplit covers forward and reverse stock splits.
	CategorySplit EventCategory = "stock_split"

	// CategorySpinOff covers spin-offs and carve-outs.
	CategorySpinOff EventCategory = "spin_off"

	// CategoryBankruptcy covers bankruptcy and receivership events.
	CategoryBankruptcy EventCategory = "bankruptcy"

	// CategoryDelisting covers delisting and deregistration notices.
	CategoryDelisting EventCategory = "delisting"

	// CategoryMaterialAgreement covers 8-K Item 1.01 entries into
	// material definitive agreements.
	CategoryMaterialAgreement EventCategory = "material_agreement"

	// CategoryOfficerChange covers 8-K Item 5.02 director and officer
	// departures and appointments.
	CategoryOfficerChange EventCategory = "officer_change"

	// CategoryDispositionComplete covers 8-K Item 2.01 completed
	// acquisitions or dispositions of assets.
	CategoryDispositionComplete EventCategory = "disposition_complete"

	// CategoryOther is the fallback when no pattern matches. A
	// classification is never empty.
	CategoryOther EventCategory = "other"
)

// AllCategories returns the known categories in priority order.
func AllCategories() []EventCategory {
	return []EventCategory{
		CategoryMerger,
		CategoryDividend,
		CategorySplit,
		CategorySpinOff,
		CategoryBankruptcy,
		CategoryDelisting,
		CategoryMaterialAgreement,
		CategoryOfficerChange,
		CategoryDispositionComplete,
		CategoryOther,
	}
}

// IsValid returns true if the category is recognised.
func (c EventCategory) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (c EventCategory) String() string {
	return string(c)
}

// Description returns a human-readable name for notifications.
func (c EventCategory) Description() string {
	switch c {
	case CategoryMerger:
		return "Merger/Acquisition"
	case CategoryDividend:
		return "Dividend/Distribution"
	case CategorySplit:
		return "Stock Split"
	case CategorySpinOff:
		return "Spin-Off"
	case CategoryBankruptcy:
		return "Bankruptcy"
	case CategoryDelisting:
		return "Delisting"
	case CategoryMaterialAgreement:
		return "Material Agreement"
	case CategoryOfficerChange:
		return "Director/Officer Change"
	case CategoryDispositionComplete:
		return "Completed Acquisition/Disposition"
	case CategoryOther:
		return "Other/Unclassified"
	default:
		return "Unknown"
	}
}

// Classification is the classifier's verdict for one filing.
type Classification struct {
	// Categories is non-empty and ordered by declared priority.
	Categories []EventCategory

	// Excerpt is the shortest text window containing the first match of
	// the highest-priority matched category. Empty when Categories is
	// exactly {CategoryOther}.
	Excerpt string
}

// Listing is the enrichment result for a filer: where its security trades.
// Both fields are empty on a lookup miss; a miss is not an error.
type Listing struct {
	// Ticker is the primary ticker symbol.
	Ticker string

	// Exchange is the listing exchange display name.
	Exchange string
}

// CorporateAction is the normalised output record of the pipeline. Exactly
// one CorporateAction traces to one FilingReference, and the record is
// never mutated after creation; re-runs produce new values that callers
// dedupe by accession number.
type CorporateAction struct {
	// CIK identifies the filer.
	CIK string

	// CompanyName is the filer's conformed name from the header.
	CompanyName string

	// Ticker is the enriched ticker symbol; empty if the lookup missed.
	Ticker string

	// Exchange is the enriched listing exchange; empty if the lookup missed.
	Exchange string

	// FormType is the submission type.
	FormType string

	// FilingDate is when the filing was submitted.
	FilingDate time.Time

	// AccessionNumber is the dedup key, unique within Market.
	AccessionNumber string

	// Market identifies the source market.
	Market string

	// Categories is the non-empty, priority-ordered category set.
	Categories []EventCategory

	// Excerpt supports the classification for human review.
	Excerpt string

	// SourceURL is the provenance link to the original document.
	SourceURL string
}

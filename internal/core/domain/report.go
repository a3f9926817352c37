package domain

import "time"

// Stage identifies where in the pipeline a filing's processing stopped.
type Stage string

// Pipeline stages, in execution order.
const (
	StageListing     Stage = "listing"
	StageFetching    Stage = "fetching"
	StageParsing     Stage = "parsing"
	StageClassifying Stage = "classifying"
	StageEnriching   Stage = "enriching"
	StageDone        Stage = "done"
)

// SkippedFiling records one filing that failed a per-filing stage.
// A single filing's failure never aborts the run.
type SkippedFiling struct {
	// Ref is the filing that was skipped.
	Ref FilingReference

	// Stage is where processing failed.
	Stage Stage

	// Reason is the failure description, suitable for the run report.
	Reason string
}

// Summary holds counters for one pipeline run.
type Summary struct {
	// Listed is how many index entries matched the form filter.
	Listed int

	// Records is how many CorporateAction records were produced.
	Records int

	// Skipped is how many filings failed a per-filing stage.
	Skipped int

	// Duplicates is how many filings were already in the seen store.
	Duplicates int
}

// RunReport is the terminal output of one pipeline run: the successful
// records, the skipped items with reasons, and the count summary. A day
// with zero filings is a successful run with an empty report.
type RunReport struct {
	// RunID uniquely identifies this run.
	RunID string

	// Date is the business day the run covered.
	Date time.Time

	// Market identifies the source market.
	Market string

	// Records are the successful records, ordered by accession number.
	Records []CorporateAction

	// Skipped lists per-filing failures with stage and reason.
	Skipped []SkippedFiling

	// Summary holds the counters.
	Summary Summary

	// StartedAt and EndedAt bound the run.
	StartedAt time.Time
	EndedAt   time.Time
}

package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

// PipelineRunner executes the filing pipeline for one business day.
type PipelineRunner interface {
	// Run processes the given day's filings and returns the run report.
	// The zero time selects the most recent business day.
	//
	// Per-filing failures are recorded on the report and never abort the
	// run; a listing failure aborts with a run-fatal error.
	Run(ctx context.Context, day time.Time) (*domain.RunReport, error)

	// Status returns the state of the active run, if any.
	Status(ctx context.Context) (*RunStatus, error)
}

// RunStatus represents the current state of a pipeline run.
type RunStatus struct {
	// Running indicates a run is currently in progress.
	Running bool

	// Date is the business day being processed.
	Date time.Time

	// Processed is the count of filings handled so far.
	Processed int

	// Skipped is the number of per-filing failures so far.
	Skipped int
}

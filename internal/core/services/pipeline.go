package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driving"
	"github.com/custodia-labs/filingwatch/internal/logger"
)

// Ensure PipelineOrchestrator implements the interface.
var _ driving.PipelineRunner = (*PipelineOrchestrator)(nil)

// PipelineOrchestrator runs the daily filing pipeline: list, fetch,
// parse, classify, enrich. One filing's failure never takes down the
// run; only listing failures are fatal.
type PipelineOrchestrator struct {
	source     driven.FilingSource
	fetcher    driven.ContentFetcher
	parser     driven.HeaderParser
	normaliser driven.Normaliser
	classifier driven.Classifier
	enricher   driven.Enricher
	seen       driven.SeenStore
	settings   domain.Settings
	calendar   domain.Calendar

	// Status tracking
	mu      sync.Mutex
	running bool
	status  driving.RunStatus
}

// NewPipelineOrchestrator creates a pipeline orchestrator.
// The enricher is optional: nil disables ticker/exchange enrichment and
// records carry empty listing fields.
func NewPipelineOrchestrator(
	source driven.FilingSource,
	fetcher driven.ContentFetcher,
	parser driven.HeaderParser,
	normaliser driven.Normaliser,
	classifier driven.Classifier,
	enricher driven.Enricher,
	seen driven.SeenStore,
	settings domain.Settings,
	calendar domain.Calendar,
) *PipelineOrchestrator {
	if calendar == nil {
		calendar = domain.WeekendCalendar{}
	}
	return &PipelineOrchestrator{
		source:     source,
		fetcher:    fetcher,
		parser:     parser,
		normaliser: normaliser,
		classifier: classifier,
		enricher:   enricher,
		seen:       seen,
		settings:   settings,
		calendar:   calendar,
	}
}

// Run processes one business day's filings and returns the run report.
// The zero time selects the most recent business day. Only one run may
// be active at a time; a second call returns ErrRunInProgress.
func (o *PipelineOrchestrator) Run(ctx context.Context, day time.Time) (*domain.RunReport, error) {
	if day.IsZero() {
		day = domain.MostRecentBusinessDay(time.Now().UTC(), o.calendar)
	}
	day = day.Truncate(24 * time.Hour)

	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, domain.ErrRunInProgress
	}
	o.running = true
	o.status = driving.RunStatus{Running: true, Date: day}
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.running = false
		o.status.Running = false
		o.mu.Unlock()
	}()

	if o.settings.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.settings.RunTimeout)
		defer cancel()
	}

	report := &domain.RunReport{
		RunID:     uuid.New().String(),
		Date:      day,
		Market:    o.source.Market(),
		StartedAt: time.Now().UTC(),
	}

	logger.Section("Run %s: %s filings for %s", report.RunID, o.source.Market(), day.Format("2006-01-02"))

	refs, err := o.source.ListFilings(ctx, day, o.settings.FormTypes)
	if err != nil {
		return nil, fmt.Errorf("listing %s filings for %s: %w",
			o.source.Market(), day.Format("2006-01-02"), err)
	}
	report.Summary.Listed = len(refs)

	work, duplicates, err := o.dedup(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("checking seen filings: %w", err)
	}
	report.Summary.Duplicates = duplicates

	o.process(ctx, day, work, report)

	// Deterministic output: order by accession id regardless of which
	// worker finished first.
	sort.Slice(report.Records, func(i, j int) bool {
		return report.Records[i].AccessionNumber < report.Records[j].AccessionNumber
	})
	sort.Slice(report.Skipped, func(i, j int) bool {
		return report.Skipped[i].Ref.AccessionNumber() < report.Skipped[j].Ref.AccessionNumber()
	})

	report.Summary.Records = len(report.Records)
	report.Summary.Skipped = len(report.Skipped)
	report.EndedAt = time.Now().UTC()

	// Mark after the report is assembled so a crash mid-run re-emits
	// rather than silently drops.
	for _, record := range report.Records {
		if err := o.seen.MarkSeen(ctx, record.AccessionNumber, day); err != nil {
			logger.Warn("Failed to mark %s seen: %v", record.AccessionNumber, err)
		}
	}

	logger.Info("Run complete: %d listed, %d records, %d skipped, %d duplicates",
		report.Summary.Listed, report.Summary.Records, report.Summary.Skipped, report.Summary.Duplicates)

	return report, nil
}

// Status returns the state of the active run, or an idle status.
func (o *PipelineOrchestrator) Status(_ context.Context) (*driving.RunStatus, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	status := o.status
	return &status, nil
}

// dedup drops filings whose accession id is already in the seen store,
// and collapses repeats within the index itself.
func (o *PipelineOrchestrator) dedup(ctx context.Context, refs []domain.FilingReference) ([]domain.FilingReference, int, error) {
	work := make([]domain.FilingReference, 0, len(refs))
	inBatch := make(map[string]bool, len(refs))
	duplicates := 0

	for _, ref := range refs {
		accession := ref.AccessionNumber()
		if inBatch[accession] {
			duplicates++
			continue
		}
		inBatch[accession] = true

		seen, err := o.seen.Seen(ctx, accession)
		if err != nil {
			return nil, 0, err
		}
		if seen {
			duplicates++
			continue
		}
		work = append(work, ref)
	}
	return work, duplicates, nil
}

// process fans the work out over a bounded worker pool and accumulates
// results under the report mutex. Cancellation stops the dispatch;
// completed records stay on the report.
func (o *PipelineOrchestrator) process(ctx context.Context, day time.Time, work []domain.FilingReference, report *domain.RunReport) {
	workers := o.settings.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan domain.FilingReference)
	var (
		wg       sync.WaitGroup
		reportMu sync.Mutex
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ref := range jobs {
				record, skip := o.processFiling(ctx, ref)

				reportMu.Lock()
				if skip != nil {
					report.Skipped = append(report.Skipped, *skip)
				} else {
					report.Records = append(report.Records, *record)
				}
				reportMu.Unlock()

				o.mu.Lock()
				if skip != nil {
					o.status.Skipped++
				} else {
					o.status.Processed++
				}
				o.mu.Unlock()
			}
		}()
	}

dispatch:
	for _, ref := range work {
		select {
		case <-ctx.Done():
			logger.Warn("Run for %s cancelled with %d filings left", day.Format("2006-01-02"), len(work))
			break dispatch
		case jobs <- ref:
		}
	}
	close(jobs)
	wg.Wait()
}

// processFiling runs one filing through fetch, parse, classify and
// enrich. Returns either a record or a skip entry, never both.
func (o *PipelineOrchestrator) processFiling(ctx context.Context, ref domain.FilingReference) (*domain.CorporateAction, *domain.SkippedFiling) {
	raw, err := o.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, &domain.SkippedFiling{Ref: ref, Stage: domain.StageFetching, Reason: err.Error()}
	}

	fields, err := o.parser.Parse(raw)
	if err != nil {
		return nil, &domain.SkippedFiling{Ref: ref, Stage: domain.StageParsing, Reason: err.Error()}
	}

	text := o.normaliser.Normalise(ctx, raw.Content)
	classification := o.classifier.Classify(text)

	record := &domain.CorporateAction{
		CIK:             fields.CIK,
		CompanyName:     fields.CompanyName,
		FormType:        fields.FormType,
		FilingDate:      fields.FilingDate,
		AccessionNumber: fields.AccessionNumber,
		Market:          ref.Market,
		Categories:      classification.Categories,
		Excerpt:         classification.Excerpt,
		SourceURL:       o.fetcher.ResolvePrimaryDocument(raw),
	}

	if o.enricher != nil {
		listing, err := o.enricher.Enrich(ctx, fields.CIK)
		if err != nil {
			return nil, &domain.SkippedFiling{Ref: ref, Stage: domain.StageEnriching, Reason: err.Error()}
		}
		record.Ticker = listing.Ticker
		record.Exchange = listing.Exchange
	}

	return record, nil
}

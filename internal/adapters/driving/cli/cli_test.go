package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driving"
)

// execute runs the root command with args, capturing combined output.
// Package-level service vars are restored after each test.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		pipelineRunner = nil
		seenStore = nil
		scheduler = nil
		settings = domain.Settings{}
		settingsPath = ""
		runJSON = false
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// stubRunner implements driving.PipelineRunner.
type stubRunner struct {
	report  *domain.RunReport
	err     error
	lastDay time.Time
}

func (s *stubRunner) Run(_ context.Context, day time.Time) (*domain.RunReport, error) {
	s.lastDay = day
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubRunner) Status(_ context.Context) (*driving.RunStatus, error) {
	return &driving.RunStatus{}, nil
}

// stubSeenStore implements driven.SeenStore.
type stubSeenStore struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	pruned time.Time
}

func newStubSeenStore() *stubSeenStore {
	return &stubSeenStore{seen: make(map[string]time.Time)}
}

func (s *stubSeenStore) Seen(_ context.Context, accession string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[accession]
	return ok, nil
}

func (s *stubSeenStore) MarkSeen(_ context.Context, accession string, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[accession] = day
	return nil
}

func (s *stubSeenStore) Prune(_ context.Context, before time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruned = before
	return nil
}

func (s *stubSeenStore) Close() error { return nil }

func validSettings() domain.Settings {
	cfg := domain.DefaultSettings()
	cfg.Identity = "Test Suite test@example.com"
	return cfg
}

func sampleReport() *domain.RunReport {
	return &domain.RunReport{
		RunID:  "run-1",
		Date:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Market: "US",
		Records: []domain.CorporateAction{
			{
				CIK:             "320193",
				CompanyName:     "Apple Inc.",
				Ticker:          "AAPL",
				FormType:        "8-K",
				FilingDate:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				AccessionNumber: "0000320193-24-000001",
				Market:          "US",
				Categories:      []domain.EventCategory{domain.CategoryMerger},
				Excerpt:         "entered into a definitive merger agreement",
				SourceURL:       "https://www.sec.gov/Archives/edgar/data/320193/000032019324000001/a.htm",
			},
		},
		Summary: domain.Summary{Listed: 1, Records: 1},
	}
}

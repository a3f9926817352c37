// Command filingwatch tracks corporate-action filings from SEC EDGAR.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/filingwatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/filingwatch/internal/adapters/driven/notify"
	"github.com/custodia-labs/filingwatch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/filingwatch/internal/adapters/driving/cli"
	"github.com/custodia-labs/filingwatch/internal/classifier"
	"github.com/custodia-labs/filingwatch/internal/connectors/edgar"
	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
	"github.com/custodia-labs/filingwatch/internal/core/services"
	"github.com/custodia-labs/filingwatch/internal/enrichment"
	"github.com/custodia-labs/filingwatch/internal/normalisers/filing"
	"github.com/custodia-labs/filingwatch/internal/parsers/header"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	settingsPath := os.Getenv("FILINGWATCH_CONFIG")
	if settingsPath == "" {
		var err error
		settingsPath, err = file.DefaultPath()
		if err != nil {
			return err
		}
	}

	settings, err := file.Load(settingsPath)
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// One client, one limiter: every worker shares the request budget.
	client := edgar.NewClient(edgar.Config{
		Identity:  settings.Identity,
		RateLimit: settings.RateLimit,
		RetryMax:  settings.RetryMax,
	})
	source := edgar.NewIndexSource(client)
	fetcher := edgar.NewFetcher(client)

	var enricher driven.Enricher
	var mapperClose func()
	if settings.MappingFile != "" {
		mapper, err := enrichment.NewMapper(settings.MappingFile)
		if err != nil {
			return fmt.Errorf("loading ticker table: %w", err)
		}
		enricher = mapper
		mapperClose = func() { _ = mapper.Close() }
	}
	if mapperClose != nil {
		defer mapperClose()
	}

	runner := services.NewPipelineOrchestrator(
		source,
		fetcher,
		header.NewParser(),
		filing.New(),
		classifier.New(),
		enricher,
		store.SeenStore(),
		settings,
		domain.WeekendCalendar{},
	)

	scheduler := services.NewScheduler(
		settings.Schedule,
		store.SchedulerStore(),
		runner,
		notify.NewWriter(os.Stdout),
	)

	return cli.Execute(version, cli.Services{
		Runner:       runner,
		Scheduler:    scheduler,
		SeenStore:    store.SeenStore(),
		Settings:     settings,
		SettingsPath: settingsPath,
	})
}

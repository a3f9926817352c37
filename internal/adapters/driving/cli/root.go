// Package cli implements the filingwatch command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driving"
	"github.com/custodia-labs/filingwatch/internal/core/services"
	"github.com/custodia-labs/filingwatch/internal/logger"
)

// Wired application services, set by Execute before any command runs.
var (
	pipelineRunner driving.PipelineRunner
	scheduler      *services.Scheduler
	seenStore      driven.SeenStore
	settings       domain.Settings
	settingsPath   string
	version        = "dev"
)

var verboseFlag bool

// Services holds everything the commands need, wired by main.
type Services struct {
	Runner       driving.PipelineRunner
	Scheduler    *services.Scheduler
	SeenStore    driven.SeenStore
	Settings     domain.Settings
	SettingsPath string
}

var rootCmd = &cobra.Command{
	Use:   "filingwatch",
	Short: "Track corporate-action filings from SEC EDGAR",
	Long: `filingwatch watches the SEC EDGAR daily index for corporate-action
filings (mergers, dividends, splits, spin-offs and the like), classifies
them, and emits structured records.

Configure a contact identity before the first run:

  filingwatch config set identity "Example Corp admin@example.com"

SEC fair-access policy requires it on every request.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"print pipeline progress to stderr")
}

// Execute wires the services into the command tree and runs it.
func Execute(v string, svcs Services) error {
	version = v
	pipelineRunner = svcs.Runner
	scheduler = svcs.Scheduler
	seenStore = svcs.SeenStore
	settings = svcs.Settings
	settingsPath = svcs.SettingsPath

	return rootCmd.Execute()
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/filingwatch/internal/adapters/driven/notify"
	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

var runJSON bool

var runCmd = &cobra.Command{
	Use:   "run [date]",
	Short: "Process one business day's filings",
	Long: `Runs the filing pipeline for a business day and prints the results.
The date is YYYY-MM-DD; omitted, the most recent business day is used.

Filings already processed in earlier runs are skipped as duplicates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runJSON, "json", false, "emit the full run report as JSON")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if pipelineRunner == nil {
		return errors.New("pipeline not configured")
	}
	if err := settings.Validate(); err != nil {
		if errors.Is(err, domain.ErrNoIdentity) {
			return errors.New(`no identity configured; run:
  filingwatch config set identity "Your Name you@example.com"`)
		}
		return err
	}

	var day time.Time
	if len(args) > 0 {
		parsed, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
		}
		day = parsed
	}

	report, err := pipelineRunner.Run(context.Background(), day)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if runJSON {
		return notify.NewWriter(cmd.OutOrStdout()).Publish(cmd.Context(), report)
	}

	printReport(cmd, report)
	return nil
}

// printReport renders the human-readable run summary.
func printReport(cmd *cobra.Command, report *domain.RunReport) {
	cmd.Printf("Run %s for %s (%s)\n", report.RunID, report.Date.Format("2006-01-02"), report.Market)
	cmd.Printf("Listed %d, records %d, skipped %d, duplicates %d\n\n",
		report.Summary.Listed, report.Summary.Records,
		report.Summary.Skipped, report.Summary.Duplicates)

	for _, r := range report.Records {
		name := r.CompanyName
		if r.Ticker != "" {
			name = fmt.Sprintf("%s (%s)", r.CompanyName, r.Ticker)
		}
		categories := make([]string, 0, len(r.Categories))
		for _, c := range r.Categories {
			categories = append(categories, c.Description())
		}
		cmd.Printf("%s  %s  %s  %s\n", r.AccessionNumber, r.FormType, name, strings.Join(categories, ", "))
		if r.Excerpt != "" {
			cmd.Printf("    %s\n", r.Excerpt)
		}
		cmd.Printf("    %s\n", r.SourceURL)
	}

	if len(report.Skipped) > 0 {
		cmd.Println("\nSkipped:")
		for _, s := range report.Skipped {
			cmd.Printf("  %s  %s: %s\n", s.Ref.AccessionNumber(), s.Stage, s.Reason)
		}
	}
}

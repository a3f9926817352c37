package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the daily pipeline on a schedule",
	Long: `Starts the background scheduler and processes each new business day's
filings on the configured interval. Runs in the foreground until
interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if !settings.Schedule.Enabled {
		return errors.New(`scheduling is disabled; run:
  filingwatch config set schedule.enabled true`)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s filings every %s (Ctrl-C to stop)\n",
		settings.FormTypes, settings.Schedule.Interval)

	err := scheduler.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

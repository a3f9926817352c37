package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var seenCmd = &cobra.Command{
	Use:   "seen",
	Short: "Inspect and maintain the processed-filing ledger",
}

var seenCheckCmd = &cobra.Command{
	Use:   "check <accession-number>",
	Short: "Check whether a filing has been processed",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeenCheck,
}

var seenPruneBefore string

var seenPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove ledger entries older than a date",
	RunE:  runSeenPrune,
}

func init() {
	seenPruneCmd.Flags().StringVar(&seenPruneBefore, "before", "",
		"remove entries for business days before this date (YYYY-MM-DD)")
	_ = seenPruneCmd.MarkFlagRequired("before")

	seenCmd.AddCommand(seenCheckCmd)
	seenCmd.AddCommand(seenPruneCmd)
	rootCmd.AddCommand(seenCmd)
}

func runSeenCheck(cmd *cobra.Command, args []string) error {
	if seenStore == nil {
		return errors.New("seen store not configured")
	}

	seen, err := seenStore.Seen(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("checking %s: %w", args[0], err)
	}

	if seen {
		cmd.Printf("%s: seen\n", args[0])
	} else {
		cmd.Printf("%s: not seen\n", args[0])
	}
	return nil
}

func runSeenPrune(cmd *cobra.Command, _ []string) error {
	if seenStore == nil {
		return errors.New("seen store not configured")
	}

	before, err := time.Parse("2006-01-02", seenPruneBefore)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", seenPruneBefore)
	}

	if err := seenStore.Prune(cmd.Context(), before); err != nil {
		return fmt.Errorf("pruning: %w", err)
	}

	cmd.Printf("Pruned entries before %s\n", seenPruneBefore)
	return nil
}

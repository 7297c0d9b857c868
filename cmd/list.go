package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"champstats/internal/report"
	"champstats/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()

		summaries, err := db.ListRuns()
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Fprintln(os.Stdout, "No runs recorded yet.")
			return nil
		}
		report.PrintRunList(os.Stdout, summaries)
		return nil
	},
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"champstats/internal/analytics"
	"champstats/internal/storage"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show career-wide totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()

		ov, err := db.GetOverview()
		if err != nil {
			return fmt.Errorf("load overview: %w", err)
		}
		if ov.TotalRuns == 0 {
			fmt.Fprintln(os.Stdout, "No runs recorded yet.")
			return nil
		}

		out := os.Stdout
		fmt.Fprintf(out, "Runs:        %d (%d completed)\n", ov.TotalRuns, ov.CompletedRuns)
		fmt.Fprintf(out, "Matches:     %d\n", ov.TotalMatches)
		fmt.Fprintf(out, "Record:      %d-%d (%.1f%% wins)\n",
			ov.Wins, ov.TotalMatches-ov.Wins, analytics.Pct(ov.Wins, ov.TotalMatches))
		fmt.Fprintf(out, "Goals:       %d for, %d against (%+d)\n",
			ov.GoalsFor, ov.GoalsAgainst, ov.GoalsFor-ov.GoalsAgainst)
		fmt.Fprintf(out, "Per game:    %.2f for, %.2f against\n",
			analytics.PerGame(float64(ov.GoalsFor), ov.TotalMatches),
			analytics.PerGame(float64(ov.GoalsAgainst), ov.TotalMatches))
		if ov.FirstStart != "" {
			fmt.Fprintf(out, "Active:      %s to %s\n", ov.FirstStart, ov.LastStart)
		}
		return nil
	},
}

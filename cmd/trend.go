package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"champstats/internal/cps"
	"champstats/internal/model"
	"champstats/internal/report"
	"champstats/internal/storage"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the composite score trend across runs",
	Long: `Print one row per run in chronological order with its composite
performance score. Runs logged without player ratings fall back to the
reduced formula (goals, expected goals, and results only).`,
	Args: cobra.NoArgs,
	RunE: runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	runs, err := db.GetAllRuns()
	if err != nil {
		return fmt.Errorf("load runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs recorded yet.")
		return nil
	}

	rows := make([]report.TrendRow, 0, len(runs))
	for i := range runs {
		run := &runs[i]
		row := report.TrendRow{
			Name:  run.DisplayName,
			Start: run.StartDate,
			Games: len(run.Matches),
			Wins:  run.Wins(),
		}
		if hasRatings(run.Matches) {
			row.Score, row.HasCPS = cps.Compute(run.Matches)
		} else {
			row.Score, row.HasCPS = cps.ComputeReduced(run.Matches)
			row.Reduced = true
		}
		rows = append(rows, row)
	}
	report.PrintTrendTable(os.Stdout, rows)
	return nil
}

func hasRatings(matches []model.MatchRecord) bool {
	for i := range matches {
		if len(matches[i].PlayerStats) > 0 {
			return true
		}
	}
	return false
}

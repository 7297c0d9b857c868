package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"champstats/internal/insights"
	"champstats/internal/report"
	"champstats/internal/storage"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate ranked insights from the full history",
	Long: `Run the rule battery over every completed run plus the in-progress one
and print the ranked, categorized results.`,
	Args: cobra.NoArgs,
	RunE: runInsights,
}

func runInsights(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	historical, err := db.GetCompletedRuns()
	if err != nil {
		return fmt.Errorf("load completed runs: %w", err)
	}
	active, err := db.GetActiveRun()
	if err != nil {
		return fmt.Errorf("get active run: %w", err)
	}

	list := insights.Generate(historical, active, engineCfg)
	log.Debug().Int("runs", len(historical)).Int("insights", len(list)).Msg("insights generated")

	if len(list) == 0 {
		fmt.Fprintln(os.Stdout, "Not enough data for insights yet. Log a few more matches.")
		return nil
	}
	report.PrintInsights(os.Stdout, list)
	return nil
}

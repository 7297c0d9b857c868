package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"champstats/internal/chunks"
	"champstats/internal/report"
	"champstats/internal/storage"
)

var formIncludeActive bool

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Show all-time best and worst chunks per run position",
	Long: `Compare every completed run's beginning, middle, and end windows and
print the all-time best and worst record for each position. The
in-progress run is excluded unless --include-active is set, so a
half-finished window cannot claim an all-time record.`,
	Args: cobra.NoArgs,
	RunE: runForm,
}

func init() {
	formCmd.Flags().BoolVar(&formIncludeActive, "include-active", false,
		"also rank the in-progress run's windows")
}

func runForm(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	runs, err := db.GetCompletedRuns()
	if err != nil {
		return fmt.Errorf("load completed runs: %w", err)
	}
	if formIncludeActive {
		active, err := db.GetActiveRun()
		if err != nil {
			return fmt.Errorf("get active run: %w", err)
		}
		if active != nil {
			runs = append(runs, *active)
		}
	}
	ex := chunks.AllTimeExtremes(runs, engineCfg)
	report.PrintExtremesTable(os.Stdout, ex)
	return nil
}

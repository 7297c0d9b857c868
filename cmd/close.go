package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"champstats/internal/storage"
)

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Complete the current run",
	Long: `Mark the in-progress run as completed, freezing its match list, and
cache its composite performance score. Runs also close automatically
when they reach the game cap.`,
	Args: cobra.NoArgs,
	RunE: runClose,
}

var closeDate string

func init() {
	closeCmd.Flags().StringVar(&closeDate, "date", "", "end date YYYY-MM-DD (default today)")
}

func runClose(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	run, err := db.GetActiveRun()
	if err != nil {
		return fmt.Errorf("get active run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no run in progress")
	}
	if closeDate == "" {
		closeDate = time.Now().Format("2006-01-02")
	}
	if err := db.CompleteRun(run.RunID, closeDate); err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	if err := cacheScore(db, run); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Run %q closed: %d-%d over %d games.\n",
		run.DisplayName, run.Wins(), run.Losses(), len(run.Matches))
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"champstats/internal/chunks"
	"champstats/internal/cps"
	"champstats/internal/insights"
	"champstats/internal/model"
	"champstats/internal/report"
	"champstats/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show [run]",
	Short: "Show one run in detail",
	Long: `Print the full picture for a run: header with composite score, the
match log, the beginning/middle/end chunk breakdown, and the player
aggregates. With no argument the in-progress run is shown. The run
argument matches an id prefix or an exact display name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	run, err := resolveRun(db, args)
	if err != nil {
		return err
	}

	score, hasScore := cps.Compute(run.Matches)
	if hasScore && run.IsCompleted {
		// Keep the denormalized copy fresh; the matches stay the source of truth.
		if err := cacheScore(db, run); err != nil {
			return err
		}
	}

	out := os.Stdout
	report.PrintRunHeader(out, run, score, hasScore)
	fmt.Fprintln(out)
	report.PrintMatchTable(out, run.Matches)

	b := chunks.Split(*run, engineCfg)
	fmt.Fprintln(out)
	report.PrintChunkTable(out, b)

	if players := insights.AggregatePlayers(run.Matches); len(players) > 0 {
		fmt.Fprintln(out)
		report.PrintPlayerTable(out, players)
	}
	return nil
}

// resolveRun picks the run named by args, or the active run when absent.
func resolveRun(db *storage.DB, args []string) (*model.Run, error) {
	if len(args) == 1 {
		run, err := db.GetRunByPrefix(args[0])
		if err != nil {
			return nil, fmt.Errorf("find run %q: %w", args[0], err)
		}
		if run == nil {
			return nil, fmt.Errorf("no run matches %q", args[0])
		}
		return run, nil
	}
	run, err := db.GetActiveRun()
	if err != nil {
		return nil, fmt.Errorf("get active run: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("no run in progress; name one explicitly")
	}
	return run, nil
}

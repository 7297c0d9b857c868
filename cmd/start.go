package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"champstats/internal/storage"
)

var startDate string

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a new weekly run",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

func init() {
	startCmd.Flags().StringVar(&startDate, "date", "", "start date (YYYY-MM-DD, default today)")
}

func runStart(cmd *cobra.Command, args []string) error {
	if err := ensureDBDir(); err != nil {
		return err
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	date := startDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	id, err := db.CreateRun(args[0], date)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	log.Info().Str("run_id", id).Str("name", args[0]).Msg("run started")
	fmt.Fprintf(os.Stdout, "Started run %q (%s). Log matches with 'champstats add'.\n", args[0], id[:8])
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"champstats/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full history as JSON",
	Long:  `Write every run with all its matches to stdout as a JSON document.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()

		runs, err := db.GetAllRuns()
		if err != nil {
			return fmt.Errorf("load runs: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(runs); err != nil {
			return fmt.Errorf("encode runs: %w", err)
		}
		return nil
	},
}

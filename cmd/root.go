package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"champstats/internal/config"
	"champstats/internal/logger"
)

var (
	dbPath    string
	logLevel  string
	engineCfg = config.Default()
	log       zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "champstats",
	Short: "Weekend-league match tracker and analytics",
	Long:  "Log weekend-league match results and compute run scores, form windows, and insights.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(logger.Config{Level: logLevel, Pretty: true})
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// .env is optional; env vars beat defaults, flags beat both.
	_ = godotenv.Load()
	env := config.EnvFromOS(filepath.Join(mustUserHome(), ".champstats", "champstats.db"))

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", env.DBPath, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func ensureDBDir() error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	return nil
}

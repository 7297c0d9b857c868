// Package config defines the engine configuration. The analytics packages
// never read ambient state: every entry point takes an explicit Config so the
// engine stays a pure function of (data, config).
package config

import "os"

// Config carries the knobs shared by the analytics core and the host layers.
type Config struct {
	// ChunkSize is the fixed window size the form analyzer splits runs into.
	ChunkSize int
	// RunCap is the match count at which a run auto-completes.
	RunCap int
	// MaxInsights bounds the ranked insight list.
	MaxInsights int
	// RecentWindow is the "recent form" sample size in matches.
	RecentWindow int
	// Score bounds for the composite performance score.
	MinScore float64
	MaxScore float64
}

// Default returns the standard weekend-league configuration:
// 15-game runs split 5/5/5, at most 12 insights, scores clamped to [1, 100].
func Default() Config {
	return Config{
		ChunkSize:    5,
		RunCap:       15,
		MaxInsights:  12,
		RecentWindow: 10,
		MinScore:     1,
		MaxScore:     100,
	}
}

// Env holds host-side settings resolved from the environment. The engine
// itself never sees these; they only steer the CLI.
type Env struct {
	DBPath   string
	LogLevel string
}

// EnvFromOS reads host settings, falling back to the given defaults.
func EnvFromOS(defaultDB string) Env {
	e := Env{DBPath: defaultDB, LogLevel: "info"}
	if v := os.Getenv("CHAMPSTATS_DB"); v != "" {
		e.DBPath = v
	}
	if v := os.Getenv("CHAMPSTATS_LOG_LEVEL"); v != "" {
		e.LogLevel = v
	}
	return e
}

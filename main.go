// Package main is the entry point for the champstats CLI tool, which tracks
// weekend-league runs and computes performance scores, form breakdowns, and
// ranked insights.
package main

import "champstats/cmd"

func main() {
	cmd.Execute()
}

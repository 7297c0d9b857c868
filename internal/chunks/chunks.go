// Package chunks partitions a run's matches into fixed-size sequential
// windows (early/mid/late form) and compares window records across history.
package chunks

import (
	"sort"

	"champstats/internal/config"
	"champstats/internal/model"
)

// Position identifies one of the three fixed windows of a run.
type Position int

const (
	Beginning Position = iota
	Middle
	End
)

func (p Position) String() string {
	switch p {
	case Beginning:
		return "beginning"
	case Middle:
		return "middle"
	default:
		return "end"
	}
}

// Positions lists the windows in run order.
var Positions = []Position{Beginning, Middle, End}

// Breakdown is a run split into its three windows.
type Breakdown struct {
	Beginning model.ChunkRecord
	Middle    model.ChunkRecord
	End       model.ChunkRecord
}

// At returns the record for a window position.
func (b Breakdown) At(p Position) model.ChunkRecord {
	switch p {
	case Beginning:
		return b.Beginning
	case Middle:
		return b.Middle
	default:
		return b.End
	}
}

// Split partitions a run's matches, ordered by sequence number, into three
// fixed-size non-overlapping windows of cfg.ChunkSize games each. A window
// with no matches yields a zero record with GameCount 0 ("no data"). A run
// with no matches yields three empty windows, never an error.
func Split(run model.Run, cfg config.Config) Breakdown {
	ordered := make([]model.MatchRecord, len(run.Matches))
	copy(ordered, run.Matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SequenceNumber < ordered[j].SequenceNumber
	})

	size := cfg.ChunkSize
	if size <= 0 {
		size = config.Default().ChunkSize
	}

	return Breakdown{
		Beginning: record(slice(ordered, 0, size)),
		Middle:    record(slice(ordered, size, 2*size)),
		End:       record(slice(ordered, 2*size, 3*size)),
	}
}

func slice(matches []model.MatchRecord, lo, hi int) []model.MatchRecord {
	if lo >= len(matches) {
		return nil
	}
	if hi > len(matches) {
		hi = len(matches)
	}
	return matches[lo:hi]
}

func record(matches []model.MatchRecord) model.ChunkRecord {
	var c model.ChunkRecord
	for i := range matches {
		m := &matches[i]
		c.GameCount++
		if m.Result == model.Win {
			c.Wins++
		} else {
			c.Losses++
		}
		c.GoalsFor += m.GoalsFor
		c.GoalsAgainst += m.GoalsAgainst
	}
	return c
}

// Extreme pairs a chunk record with the run it came from.
type Extreme struct {
	Chunk model.ChunkRecord
	RunID string
	Name  string
}

// PositionExtremes holds the single best and worst historical record for one
// window position. Found is false when no run had data in that window.
type PositionExtremes struct {
	Best  Extreme
	Worst Extreme
	Found bool
}

// Extremes holds best/worst records per window position across all history.
type Extremes struct {
	Beginning PositionExtremes
	Middle    PositionExtremes
	End       PositionExtremes
}

// At returns the extremes for a window position.
func (e Extremes) At(p Position) PositionExtremes {
	switch p {
	case Beginning:
		return e.Beginning
	case Middle:
		return e.Middle
	default:
		return e.End
	}
}

// AllTimeExtremes scans completed runs and finds, independently per window
// position, the best- and worst-performing chunk record. Ordering is goal
// difference first, win count as tie-break; further ties keep the earliest
// run in the input so the result is deterministic. Windows with no games
// never qualify. An empty history yields Found=false everywhere.
func AllTimeExtremes(runs []model.Run, cfg config.Config) Extremes {
	var out Extremes
	for _, p := range Positions {
		pe := positionExtremes(runs, p, cfg)
		switch p {
		case Beginning:
			out.Beginning = pe
		case Middle:
			out.Middle = pe
		case End:
			out.End = pe
		}
	}
	return out
}

func positionExtremes(runs []model.Run, p Position, cfg config.Config) PositionExtremes {
	var pe PositionExtremes
	for i := range runs {
		c := Split(runs[i], cfg).At(p)
		if c.GameCount == 0 {
			continue
		}
		e := Extreme{Chunk: c, RunID: runs[i].RunID, Name: runs[i].DisplayName}
		if !pe.Found {
			pe.Best, pe.Worst, pe.Found = e, e, true
			continue
		}
		// Strictly-better comparisons keep the earliest run on ties.
		if better(c, pe.Best.Chunk) {
			pe.Best = e
		}
		if better(pe.Worst.Chunk, c) {
			pe.Worst = e
		}
	}
	return pe
}

// better reports whether a strictly outranks b: goal difference descending,
// then wins descending.
func better(a, b model.ChunkRecord) bool {
	if a.GoalDiff() != b.GoalDiff() {
		return a.GoalDiff() > b.GoalDiff()
	}
	return a.Wins > b.Wins
}

package chunks

import (
	"testing"

	"champstats/internal/config"
	"champstats/internal/model"
)

func makeRun(id string, scores [][2]int) model.Run {
	run := model.Run{RunID: id, DisplayName: id}
	for i, s := range scores {
		m := model.MatchRecord{
			SequenceNumber:  i + 1,
			GoalsFor:        s[0],
			GoalsAgainst:    s[1],
			DurationMinutes: 12,
		}
		if s[0] > s[1] {
			m.Result = model.Win
		}
		run.Matches = append(run.Matches, m)
	}
	return run
}

func TestSplitFullRun(t *testing.T) {
	scores := make([][2]int, 0, 15)
	// 5 wins, then 5 mixed, then 5 losses
	for i := 0; i < 5; i++ {
		scores = append(scores, [2]int{2, 0})
	}
	scores = append(scores, [2]int{1, 0}, [2]int{0, 1}, [2]int{3, 2}, [2]int{0, 0}, [2]int{2, 1})
	for i := 0; i < 5; i++ {
		scores = append(scores, [2]int{0, 2})
	}
	run := makeRun("r1", scores)

	b := Split(run, config.Default())
	for _, p := range Positions {
		if got := b.At(p).GameCount; got != 5 {
			t.Errorf("%v window: game count = %d, want 5", p, got)
		}
	}
	if b.Beginning.Wins != 5 || b.Beginning.GoalsFor != 10 || b.Beginning.GoalsAgainst != 0 {
		t.Errorf("beginning = %+v, want 5 wins 10-0", b.Beginning)
	}
	if b.Middle.Wins != 3 || b.Middle.Losses != 2 {
		t.Errorf("middle = %+v, want 3-2", b.Middle)
	}
	if b.End.Wins != 0 || b.End.GoalsAgainst != 10 {
		t.Errorf("end = %+v, want 0 wins 0-10", b.End)
	}

	totalGames := b.Beginning.GameCount + b.Middle.GameCount + b.End.GameCount
	if totalGames != len(run.Matches) {
		t.Errorf("windows cover %d games, want %d", totalGames, len(run.Matches))
	}
}

func TestSplitOrdersBySequenceNumber(t *testing.T) {
	run := makeRun("r1", [][2]int{{2, 0}, {2, 0}, {2, 0}, {2, 0}, {2, 0}, {0, 1}})
	// Shuffle storage order; the sixth match must still land in the middle window.
	run.Matches[0], run.Matches[5] = run.Matches[5], run.Matches[0]

	b := Split(run, config.Default())
	if b.Beginning.Wins != 5 {
		t.Errorf("beginning wins = %d, want 5", b.Beginning.Wins)
	}
	if b.Middle.Losses != 1 || b.Middle.GameCount != 1 {
		t.Errorf("middle = %+v, want the single loss", b.Middle)
	}
}

func TestSplitPartialRun(t *testing.T) {
	run := makeRun("r1", [][2]int{{1, 0}, {1, 0}, {1, 0}, {1, 0}, {1, 0}, {0, 1}, {0, 1}})
	b := Split(run, config.Default())
	if b.Beginning.GameCount != 5 || b.Middle.GameCount != 2 {
		t.Errorf("got %d/%d games, want 5/2", b.Beginning.GameCount, b.Middle.GameCount)
	}
	if b.End.GameCount != 0 {
		t.Errorf("end window has %d games, want 0 (no data)", b.End.GameCount)
	}
}

func TestSplitEmptyRun(t *testing.T) {
	b := Split(model.Run{RunID: "r1"}, config.Default())
	for _, p := range Positions {
		if b.At(p).GameCount != 0 {
			t.Errorf("%v window not empty: %+v", p, b.At(p))
		}
	}
}

func TestAllTimeExtremes(t *testing.T) {
	runA := makeRun("run-a", [][2]int{{3, 0}, {3, 0}, {2, 0}, {2, 0}, {2, 0}}) // 5-0, GD +12
	runB := makeRun("run-b", [][2]int{{1, 0}, {0, 2}, {0, 2}, {0, 1}, {0, 1}}) // 1-4, GD -5
	ex := AllTimeExtremes([]model.Run{runA, runB}, config.Default())

	pe := ex.Beginning
	if !pe.Found {
		t.Fatal("beginning extremes not found")
	}
	if pe.Best.RunID != "run-a" || pe.Best.Chunk.GoalDiff() != 12 {
		t.Errorf("best = %+v, want run-a at +12", pe.Best)
	}
	if pe.Worst.RunID != "run-b" || pe.Worst.Chunk.GoalDiff() != -5 {
		t.Errorf("worst = %+v, want run-b at -5", pe.Worst)
	}
	if ex.Middle.Found || ex.End.Found {
		t.Error("middle/end should have no data for 5-game runs")
	}
}

func TestAllTimeExtremesTiesKeepEarliestRun(t *testing.T) {
	scores := [][2]int{{2, 1}, {2, 1}, {2, 1}, {0, 1}, {0, 1}}
	first := makeRun("first", scores)
	second := makeRun("second", scores)
	ex := AllTimeExtremes([]model.Run{first, second}, config.Default())

	if ex.Beginning.Best.RunID != "first" {
		t.Errorf("best tie went to %q, want first", ex.Beginning.Best.RunID)
	}
	if ex.Beginning.Worst.RunID != "first" {
		t.Errorf("worst tie went to %q, want first", ex.Beginning.Worst.RunID)
	}
}

func TestAllTimeExtremesWinsBreakGoalDiffTies(t *testing.T) {
	moreWins := makeRun("more-wins", [][2]int{{1, 0}, {1, 0}, {1, 0}, {0, 2}, {0, 1}})  // 3 wins, GD 0
	fewerWins := makeRun("fewer-wins", [][2]int{{3, 0}, {0, 1}, {0, 1}, {0, 1}, {0, 0}}) // 1 win, GD 0
	ex := AllTimeExtremes([]model.Run{fewerWins, moreWins}, config.Default())

	if ex.Beginning.Best.RunID != "more-wins" {
		t.Errorf("best = %q, want more-wins on the wins tie-break", ex.Beginning.Best.RunID)
	}
	if ex.Beginning.Worst.RunID != "fewer-wins" {
		t.Errorf("worst = %q, want fewer-wins", ex.Beginning.Worst.RunID)
	}
}

func TestAllTimeExtremesEmptyHistory(t *testing.T) {
	ex := AllTimeExtremes(nil, config.Default())
	for _, p := range Positions {
		if ex.At(p).Found {
			t.Errorf("%v extremes found in empty history", p)
		}
	}
}

package storage

import (
	"testing"

	"champstats/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testMatch(seq, gf, ga int) model.MatchRecord {
	m := model.MatchRecord{
		SequenceNumber:  seq,
		GoalsFor:        gf,
		GoalsAgainst:    ga,
		DurationMinutes: 12.5,
		Context:         model.ContextNormal,
		TimeOfDay:       "20:15",
	}
	if gf > ga {
		m.Result = model.Win
	}
	return m
}

func TestCreateRunAndActive(t *testing.T) {
	db := openMemDB(t)

	id, err := db.CreateRun("week 1", "2026-08-01")
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	active, err := db.GetActiveRun()
	if err != nil {
		t.Fatalf("GetActiveRun: %v", err)
	}
	if active == nil || active.RunID != id {
		t.Fatalf("active run = %+v, want id %s", active, id)
	}
	if active.IsCompleted {
		t.Error("fresh run must not be completed")
	}

	if _, err := db.CreateRun("week 2", "2026-08-08"); err == nil {
		t.Error("expected second concurrent run to be rejected")
	}
}

func TestAppendAndReload(t *testing.T) {
	db := openMemDB(t)
	id, err := db.CreateRun("week 1", "2026-08-01")
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	on := true
	m := testMatch(1, 3, 1)
	m.OpponentSkill = 7
	m.CrossPlay = &on
	m.Tags = []string{"comeback", "late-night"}
	m.TeamStats = &model.TeamStats{
		PossessionPct:        58,
		ExpectedGoalsFor:     2.4,
		ExpectedGoalsAgainst: 0.9,
		PassAccuracyPct:      84,
		FoulsCommitted:       2,
	}
	m.PlayerStats = []model.PlayerPerformance{
		{Name: "Saka", Position: "RW", Rating: 8.5, Goals: 2, MinutesPlayed: 90},
		{Name: "Raya", Position: "GK", Rating: 7.0, MinutesPlayed: 90},
	}
	if err := db.AppendMatch(id, m); err != nil {
		t.Fatalf("AppendMatch: %v", err)
	}
	if err := db.AppendMatch(id, testMatch(2, 0, 2)); err != nil {
		t.Fatalf("AppendMatch: %v", err)
	}

	run, err := db.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if len(run.Matches) != 2 {
		t.Fatalf("loaded %d matches, want 2", len(run.Matches))
	}

	got := run.Matches[0]
	if got.Result != model.Win || got.GoalsFor != 3 || got.GoalsAgainst != 1 {
		t.Errorf("match 1 = %+v, want W 3-1", got)
	}
	if got.OpponentSkill != 7 {
		t.Errorf("opponent skill = %d, want 7", got.OpponentSkill)
	}
	if got.CrossPlay == nil || !*got.CrossPlay {
		t.Error("cross-play flag lost")
	}
	if !got.HasTag("comeback") || !got.HasTag("late-night") {
		t.Errorf("tags = %v, want comeback and late-night", got.Tags)
	}
	if got.TeamStats == nil || got.TeamStats.ExpectedGoalsFor != 2.4 {
		t.Errorf("team stats = %+v", got.TeamStats)
	}
	if len(got.PlayerStats) != 2 || got.PlayerStats[0].Name != "Saka" {
		t.Errorf("player stats = %+v, want Saka first", got.PlayerStats)
	}
	if run.Matches[1].CrossPlay != nil {
		t.Error("cross-play should be nil when not recorded")
	}
	if run.Matches[1].TeamStats != nil {
		t.Error("team stats should be nil when not recorded")
	}
}

func TestAppendReplacesAtSequence(t *testing.T) {
	db := openMemDB(t)
	id, _ := db.CreateRun("week 1", "2026-08-01")

	first := testMatch(1, 0, 1)
	first.PlayerStats = []model.PlayerPerformance{{Name: "Rice", Position: "CM", Rating: 6.0}}
	if err := db.AppendMatch(id, first); err != nil {
		t.Fatalf("AppendMatch: %v", err)
	}

	corrected := testMatch(1, 2, 1)
	corrected.PlayerStats = []model.PlayerPerformance{{Name: "Rice", Position: "CM", Rating: 7.5}}
	if err := db.AppendMatch(id, corrected); err != nil {
		t.Fatalf("AppendMatch (replace): %v", err)
	}

	run, err := db.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if len(run.Matches) != 1 {
		t.Fatalf("loaded %d matches, want 1 after replace", len(run.Matches))
	}
	if run.Matches[0].Result != model.Win || run.Matches[0].GoalsFor != 2 {
		t.Errorf("match = %+v, want the corrected W 2-1", run.Matches[0])
	}
	if len(run.Matches[0].PlayerStats) != 1 || run.Matches[0].PlayerStats[0].Rating != 7.5 {
		t.Errorf("player rows not replaced: %+v", run.Matches[0].PlayerStats)
	}
}

func TestCompleteRunFreezes(t *testing.T) {
	db := openMemDB(t)
	id, _ := db.CreateRun("week 1", "2026-08-01")
	if err := db.AppendMatch(id, testMatch(1, 1, 0)); err != nil {
		t.Fatalf("AppendMatch: %v", err)
	}

	if err := db.CompleteRun(id, "2026-08-03"); err != nil {
		t.Fatalf("CompleteRun: %v", err)
	}
	if err := db.AppendMatch(id, testMatch(2, 1, 0)); err == nil {
		t.Error("expected append to a completed run to be rejected")
	}
	if err := db.CompleteRun(id, "2026-08-04"); err == nil {
		t.Error("expected second completion to be rejected")
	}

	active, err := db.GetActiveRun()
	if err != nil {
		t.Fatalf("GetActiveRun: %v", err)
	}
	if active != nil {
		t.Errorf("active run = %+v, want nil after completion", active)
	}

	run, _ := db.GetRun(id)
	if !run.IsCompleted || run.EndDate != "2026-08-03" {
		t.Errorf("run = %+v, want completed on 2026-08-03", run)
	}
}

func TestCachedCPSRoundTrip(t *testing.T) {
	db := openMemDB(t)
	id, _ := db.CreateRun("week 1", "2026-08-01")

	run, _ := db.GetRun(id)
	if run.CachedCPSValid {
		t.Error("fresh run should have no cached score")
	}

	if err := db.SetCachedCPS(id, 83.4); err != nil {
		t.Fatalf("SetCachedCPS: %v", err)
	}
	run, _ = db.GetRun(id)
	if !run.CachedCPSValid || run.CachedCPS != 83.4 {
		t.Errorf("cached score = %+v, want 83.4", run)
	}
}

func TestGetRunByPrefix(t *testing.T) {
	db := openMemDB(t)
	id, _ := db.CreateRun("opening week", "2026-08-01")

	byPrefix, err := db.GetRunByPrefix(id[:8])
	if err != nil {
		t.Fatalf("GetRunByPrefix: %v", err)
	}
	if byPrefix == nil || byPrefix.RunID != id {
		t.Errorf("lookup by id prefix = %+v, want %s", byPrefix, id)
	}

	byName, err := db.GetRunByPrefix("opening week")
	if err != nil {
		t.Fatalf("GetRunByPrefix: %v", err)
	}
	if byName == nil || byName.RunID != id {
		t.Errorf("lookup by name = %+v, want %s", byName, id)
	}

	missing, err := db.GetRunByPrefix("nope")
	if err != nil {
		t.Fatalf("GetRunByPrefix: %v", err)
	}
	if missing != nil {
		t.Errorf("lookup of unknown run = %+v, want nil", missing)
	}
}

func TestGetCompletedRunsExcludesActive(t *testing.T) {
	db := openMemDB(t)

	id1, _ := db.CreateRun("week 1", "2026-08-01")
	db.AppendMatch(id1, testMatch(1, 2, 0))
	db.CompleteRun(id1, "2026-08-03")

	id2, _ := db.CreateRun("week 2", "2026-08-08")
	db.AppendMatch(id2, testMatch(1, 1, 0))

	completed, err := db.GetCompletedRuns()
	if err != nil {
		t.Fatalf("GetCompletedRuns: %v", err)
	}
	if len(completed) != 1 || completed[0].RunID != id1 {
		t.Fatalf("completed runs = %+v, want only %s", completed, id1)
	}

	all, err := db.GetAllRuns()
	if err != nil {
		t.Fatalf("GetAllRuns: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all runs = %d, want 2", len(all))
	}
}

func TestListRunsAndOverview(t *testing.T) {
	db := openMemDB(t)

	id1, _ := db.CreateRun("week 1", "2026-08-01")
	db.AppendMatch(id1, testMatch(1, 3, 0))
	db.AppendMatch(id1, testMatch(2, 1, 2))
	db.CompleteRun(id1, "2026-08-03")

	id2, _ := db.CreateRun("week 2", "2026-08-08")
	db.AppendMatch(id2, testMatch(1, 2, 1))

	summaries, err := db.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	s := summaries[0]
	if s.RunID != id1 || s.GameCount != 2 || s.Wins != 1 || s.Losses != 1 {
		t.Errorf("summary = %+v, want week 1 at 1-1", s)
	}
	if !s.IsCompleted || summaries[1].IsCompleted {
		t.Error("completion flags wrong way around")
	}

	ov, err := db.GetOverview()
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if ov.TotalRuns != 2 || ov.CompletedRuns != 1 {
		t.Errorf("overview runs = %+v", ov)
	}
	if ov.TotalMatches != 3 || ov.Wins != 2 || ov.GoalsFor != 6 || ov.GoalsAgainst != 3 {
		t.Errorf("overview totals = %+v", ov)
	}
	if ov.FirstStart != "2026-08-01" || ov.LastStart != "2026-08-08" {
		t.Errorf("overview dates = %+v", ov)
	}
}

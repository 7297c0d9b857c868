package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"champstats/internal/config"
	"champstats/internal/model"
)

func buildMatch(seq, gf, ga int) model.MatchRecord {
	m := model.MatchRecord{
		SequenceNumber:  seq,
		GoalsFor:        gf,
		GoalsAgainst:    ga,
		DurationMinutes: 13,
	}
	if gf > ga {
		m.Result = model.Win
	}
	return m
}

// strongHistory is 20 games at a 70% win rate, 3.2 scored and 0.8 conceded
// per game, every match featuring one 7.4-rated player.
func strongHistory() []model.Run {
	var matches []model.MatchRecord
	for i := 0; i < 14; i++ {
		matches = append(matches, buildMatch(i+1, 4, 0))
	}
	lossScores := [][2]int{{2, 3}, {2, 3}, {1, 3}, {1, 3}, {1, 2}, {1, 2}}
	for i, s := range lossScores {
		matches = append(matches, buildMatch(15+i, s[0], s[1]))
	}
	for i := range matches {
		matches[i].PlayerStats = []model.PlayerPerformance{
			{Name: "Walker", Position: "RB", Rating: 7.4, MinutesPlayed: 90},
		}
	}
	run1 := model.Run{RunID: "a", DisplayName: "week 1", StartDate: "2026-01-02", IsCompleted: true, Matches: matches[:15]}
	run2 := model.Run{RunID: "b", DisplayName: "week 2", StartDate: "2026-01-09", IsCompleted: true, Matches: nil}
	for i, m := range matches[15:] {
		m.SequenceNumber = i + 1
		run2.Matches = append(run2.Matches, m)
	}
	return []model.Run{run1, run2}
}

func insightIDs(list []model.Insight) []string {
	ids := make([]string, len(list))
	for i, ins := range list {
		ids[i] = ins.ID
	}
	return ids
}

func indexOf(list []model.Insight, id string) int {
	for i, ins := range list {
		if ins.ID == id {
			return i
		}
	}
	return -1
}

func TestGenerateStrongRecord(t *testing.T) {
	list := Generate(strongHistory(), nil, config.Default())
	require.NotEmpty(t, list)
	ids := insightIDs(list)

	assert.Contains(t, ids, "win-rate-elite")
	assert.Contains(t, ids, "attack-prolific")
	assert.Contains(t, ids, "defense-elite")
	assert.Contains(t, ids, "goal-diff-dominant")

	elite := list[indexOf(list, "win-rate-elite")]
	assert.Equal(t, model.CategoryStrength, elite.Category)
	assert.Equal(t, model.PriorityLow, elite.Priority, "a 70%% win rate alone is not actionable")

	defense := list[indexOf(list, "defense-elite")]
	assert.Equal(t, model.CategoryStrength, defense.Category)
	assert.Equal(t, model.PriorityHigh, defense.Priority)
	assert.Equal(t, "Elite defense", defense.Title)

	assert.Less(t, indexOf(list, "defense-elite"), indexOf(list, "win-rate-elite"),
		"high-priority defense must outrank the low-priority win-rate note")
}

func TestGenerateOrdering(t *testing.T) {
	list := Generate(strongHistory(), nil, config.Default())
	require.NotEmpty(t, list)
	assert.Equal(t, model.PriorityHigh, list[0].Priority)
	for i := 1; i < len(list); i++ {
		prev, cur := list[i-1], list[i]
		assert.GreaterOrEqual(t, prev.Priority, cur.Priority, "priorities must be non-increasing")
		if prev.Priority == cur.Priority {
			assert.GreaterOrEqual(t, prev.Confidence, cur.Confidence,
				"equal priorities must be ordered by confidence")
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	hist := strongHistory()
	first := Generate(hist, nil, config.Default())
	second := Generate(hist, nil, config.Default())
	assert.Equal(t, first, second)
}

func TestGenerateRespectsCap(t *testing.T) {
	cfg := config.Default()
	cfg.MaxInsights = 2
	list := Generate(strongHistory(), nil, cfg)
	assert.LessOrEqual(t, len(list), 2)
}

func TestGenerateEmptyHistory(t *testing.T) {
	assert.Empty(t, Generate(nil, nil, config.Default()))
}

func TestGenerateActiveRunForm(t *testing.T) {
	active := &model.Run{RunID: "c", DisplayName: "current"}
	for i := 0; i < 6; i++ {
		active.Matches = append(active.Matches, buildMatch(i+1, 0, 2))
	}
	list := Generate(strongHistory(), active, config.Default())
	ids := insightIDs(list)
	assert.Contains(t, ids, "current-run-cold")

	cold := list[indexOf(list, "current-run-cold")]
	assert.Equal(t, model.CategoryThreat, cold.Category)
	assert.Equal(t, model.PriorityHigh, cold.Priority)
}

func TestEvalRuleRecoversPanics(t *testing.T) {
	panicking := func(a *Aggregates, cfg config.Config) *model.Insight {
		var m map[string]int
		m["boom"] = 1
		return nil
	}
	agg := buildAggregates(strongHistory(), nil, config.Default())
	assert.Nil(t, evalRule(panicking, agg, config.Default()))

	// A panicking rule must not poison the rest of the battery.
	list := Generate(strongHistory(), nil, config.Default())
	assert.NotEmpty(t, list)
}

func TestBuildAggregatesTotals(t *testing.T) {
	agg := buildAggregates(strongHistory(), nil, config.Default())
	assert.Equal(t, 20, agg.TotalGames)
	assert.Equal(t, 14, agg.Wins)
	assert.Equal(t, 64, agg.GoalsFor)
	assert.Equal(t, 16, agg.GoalsAgainst)
	assert.InDelta(t, 70.0, agg.WinPct(), 1e-9)
	assert.InDelta(t, 3.2, agg.AvgGoalsFor(), 1e-9)
	assert.InDelta(t, 0.8, agg.AvgGoalsAgainst(), 1e-9)
}

func TestBuildAggregatesRecentWindow(t *testing.T) {
	agg := buildAggregates(strongHistory(), nil, config.Default())
	// The last 10 games chronologically are 4 wins then 6 losses.
	assert.Equal(t, 10, agg.Recent.Games)
	assert.Equal(t, 4, agg.Recent.Wins)
}

func TestBuildAggregatesComebacks(t *testing.T) {
	run := model.Run{RunID: "a", Matches: []model.MatchRecord{
		buildMatch(1, 3, 2), // won conceding 2, margin 1
		buildMatch(2, 4, 2), // margin 2, not a comeback
		buildMatch(3, 2, 3), // loss
	}}
	tagged := buildMatch(4, 1, 0)
	tagged.Tags = []string{"comeback"}
	run.Matches = append(run.Matches, tagged)

	agg := buildAggregates([]model.Run{run}, nil, config.Default())
	assert.Equal(t, 2, agg.Comebacks)
}

func TestTopRatedPlayerHasNoRatingFloor(t *testing.T) {
	run := model.Run{RunID: "a", DisplayName: "week 1", IsCompleted: true}
	for i := 0; i < 6; i++ {
		m := buildMatch(i+1, 2, 1)
		m.PlayerStats = []model.PlayerPerformance{
			{Name: "Rice", Position: "CM", Rating: 7.0, MinutesPlayed: 90},
		}
		run.Matches = append(run.Matches, m)
	}

	list := Generate([]model.Run{run}, nil, config.Default())
	idx := indexOf(list, "player-top-rated")
	require.GreaterOrEqual(t, idx, 0, "a 7.0-rated regular must still surface as the top player")
	assert.Contains(t, list[idx].Title, "Rice")
	assert.Equal(t, model.CategoryStrength, list[idx].Category)
}

func TestScorelineSpreadSteady(t *testing.T) {
	run := model.Run{RunID: "a", IsCompleted: true}
	for i := 0; i < 10; i++ {
		run.Matches = append(run.Matches, buildMatch(i+1, 2, 1))
	}
	list := Generate([]model.Run{run}, nil, config.Default())
	ids := insightIDs(list)
	assert.Contains(t, ids, "results-steady")
	assert.NotContains(t, ids, "results-volatile")
}

func TestScorelineSpreadVolatile(t *testing.T) {
	run := model.Run{RunID: "a", IsCompleted: true}
	for i := 0; i < 5; i++ {
		run.Matches = append(run.Matches, buildMatch(i+1, 5, 0))
	}
	for i := 5; i < 10; i++ {
		run.Matches = append(run.Matches, buildMatch(i+1, 0, 5))
	}
	list := Generate([]model.Run{run}, nil, config.Default())
	ids := insightIDs(list)
	assert.Contains(t, ids, "results-volatile")
	assert.NotContains(t, ids, "results-steady")
}

func TestOpponentSkillGateCountsRatedGames(t *testing.T) {
	buildRun := func(rated int) []model.Run {
		run := model.Run{RunID: "a", IsCompleted: true}
		for i := 0; i < 12; i++ {
			m := buildMatch(i+1, 1, 0)
			if i < rated {
				m.OpponentSkill = 8
			}
			run.Matches = append(run.Matches, m)
		}
		return []model.Run{run}
	}

	ids := insightIDs(Generate(buildRun(9), nil, config.Default()))
	assert.NotContains(t, ids, "opposition-elite", "9 rated games is below the gate")

	ids = insightIDs(Generate(buildRun(10), nil, config.Default()))
	assert.Contains(t, ids, "opposition-elite")
}

func TestAggregatePlayers(t *testing.T) {
	matches := []model.MatchRecord{buildMatch(1, 2, 0), buildMatch(2, 1, 0)}
	matches[0].PlayerStats = []model.PlayerPerformance{
		{Name: "Saka", Position: "RW", Rating: 8.0, Goals: 1, MinutesPlayed: 90},
		{Name: "Rice", Position: "CM", Rating: 7.0, MinutesPlayed: 90},
	}
	matches[1].PlayerStats = []model.PlayerPerformance{
		{Name: "Saka", Position: "RW", Rating: 9.0, Goals: 1, Assists: 1, MinutesPlayed: 90},
		{Name: "Saka", Position: "ST", Rating: 6.0, MinutesPlayed: 90},
	}

	players := AggregatePlayers(matches)
	require.Len(t, players, 3, "same name on two positions aggregates separately")

	top := players[0]
	assert.Equal(t, model.PlayerKey{Name: "Saka", Position: "RW"}, top.Key)
	assert.Equal(t, 2, top.Appearances)
	assert.InDelta(t, 8.5, top.AvgRating(), 1e-9)
	assert.Equal(t, 2, top.Goals)
}

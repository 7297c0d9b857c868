package cps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"champstats/internal/model"
)

func match(gf, ga int) model.MatchRecord {
	res := model.Loss
	if gf > ga {
		res = model.Win
	}
	return model.MatchRecord{Result: res, GoalsFor: gf, GoalsAgainst: ga, DurationMinutes: 12}
}

func TestComputeEmptySet(t *testing.T) {
	score, ok := Compute(nil)
	assert.False(t, ok)
	assert.Zero(t, score)

	score, ok = ComputeReduced([]model.MatchRecord{})
	assert.False(t, ok)
	assert.Zero(t, score)
}

func TestComputeExactComponents(t *testing.T) {
	m1 := match(3, 1)
	m1.TeamStats = &model.TeamStats{ExpectedGoalsFor: 2.5, ExpectedGoalsAgainst: 1.0}
	m1.PlayerStats = []model.PlayerPerformance{{Name: "Rice", Position: "CM", Rating: 8.0, YellowCards: 1}}
	m2 := match(1, 2)
	m2.PlayerStats = []model.PlayerPerformance{{Name: "Rice", Position: "CM", Rating: 6.0}}
	matches := []model.MatchRecord{m1, m2}

	// goals:    2.0/game * 25 = 50        -> * 0.30 = 15.0
	// xG:       50 + 1.5*10   = 65        -> * 0.25 = 16.25
	// rating:   mean 7.0      = 70        -> * 0.20 = 14.0
	// conceded: 100 - 1.5*25  = 62.5      -> * 0.15 = 9.375
	// cards:    100 - 5       = 95        -> * 0.10 = 9.5
	// result:   50% wins      = 50        -> * 0.30 = 15.0
	// total 79.125, rounded to 79.1
	score, ok := Compute(matches)
	require.True(t, ok)
	assert.InDelta(t, 79.1, score, 1e-9)
}

func TestComputeReducedIsADifferentFormula(t *testing.T) {
	m1 := match(3, 1)
	m1.TeamStats = &model.TeamStats{ExpectedGoalsFor: 2.5, ExpectedGoalsAgainst: 1.0}
	m1.PlayerStats = []model.PlayerPerformance{{Name: "Rice", Position: "CM", Rating: 8.0, YellowCards: 1}}
	m2 := match(1, 2)
	m2.PlayerStats = []model.PlayerPerformance{{Name: "Rice", Position: "CM", Rating: 6.0}}
	matches := []model.MatchRecord{m1, m2}

	// goals + xG + result only: 15.0 + 16.25 + 15.0 = 46.25, rounded to 46.3
	score, ok := ComputeReduced(matches)
	require.True(t, ok)
	assert.InDelta(t, 46.3, score, 1e-9)

	full, _ := Compute(matches)
	assert.NotEqual(t, full, score)
}

func TestComputeOrderInvariance(t *testing.T) {
	matches := []model.MatchRecord{match(4, 0), match(0, 3), match(2, 2), match(1, 0)}
	for i := range matches {
		matches[i].PlayerStats = []model.PlayerPerformance{
			{Name: "Rice", Position: "CM", Rating: float64(5 + i)},
		}
	}
	forward, ok := Compute(matches)
	require.True(t, ok)

	reversed := make([]model.MatchRecord, len(matches))
	for i := range matches {
		reversed[len(matches)-1-i] = matches[i]
	}
	backward, ok := Compute(reversed)
	require.True(t, ok)
	assert.Equal(t, forward, backward)
}

func TestComputeClampsAtUpperBound(t *testing.T) {
	var matches []model.MatchRecord
	for i := 0; i < 10; i++ {
		m := match(5, 0)
		m.TeamStats = &model.TeamStats{ExpectedGoalsFor: 5}
		m.PlayerStats = []model.PlayerPerformance{{Name: "Haaland", Position: "ST", Rating: 10}}
		matches = append(matches, m)
	}
	score, ok := Compute(matches)
	require.True(t, ok)
	assert.Equal(t, MaxScore, score)
}

func TestComputeStaysInBounds(t *testing.T) {
	sets := [][]model.MatchRecord{
		{match(0, 10)},
		{match(0, 5), match(0, 5), match(0, 5)},
		{match(1, 0)},
		{match(2, 2)},
	}
	for _, matches := range sets {
		score, ok := Compute(matches)
		require.True(t, ok)
		assert.GreaterOrEqual(t, score, MinScore)
		assert.LessOrEqual(t, score, MaxScore)
	}
}

func TestCardsDragScore(t *testing.T) {
	clean := []model.MatchRecord{match(2, 1)}
	clean[0].PlayerStats = []model.PlayerPerformance{{Name: "Rice", Position: "CM", Rating: 7}}

	dirty := []model.MatchRecord{match(2, 1)}
	dirty[0].PlayerStats = []model.PlayerPerformance{
		{Name: "Rice", Position: "CM", Rating: 7, YellowCards: 2, RedCards: 1},
	}

	cleanScore, _ := Compute(clean)
	dirtyScore, _ := Compute(dirty)
	assert.Greater(t, cleanScore, dirtyScore)
}

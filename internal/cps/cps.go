// Package cps computes the Champs Performance Score, the single composite
// 1–100 number summarizing a set of matches.
package cps

import (
	"champstats/internal/analytics"
	"champstats/internal/model"
)

// Component weights. Note the basis intentionally sums to 1.30: the goals
// and result components each carry a nominal 30%. Historical scores depend
// on this exact arithmetic, so it is preserved, not normalized.
const (
	WeightGoals    = 0.30
	WeightXG       = 0.25
	WeightRating   = 0.20
	WeightConceded = 0.15
	WeightCards    = 0.10
	WeightResult   = 0.30
)

// Normalization constants for the individual components.
const (
	GoalsPerGameScale = 25.0 // 4 goals/game saturates the goals component
	XGBaseline        = 50.0 // neutral xG differential maps to 50
	XGDiffScale       = 10.0 // each xG of differential moves 10 points
	ConcededScale     = 25.0 // 4 conceded/game zeroes the defense component
	YellowCardCost    = 5.0
	RedCardCost       = 15.0
)

// Score bounds.
const (
	MinScore = 1.0
	MaxScore = 100.0
)

// Compute reduces a non-empty set of matches to one bounded score.
// The second return is false for an empty set ("no score yet" is an
// expected case, not an error). The function is a pure projection of the
// input multiset: reordering the slice cannot change the result.
func Compute(matches []model.MatchRecord) (float64, bool) {
	if len(matches) == 0 {
		return 0, false
	}
	s := sums(matches)

	score := goalsComponent(s) +
		xgComponent(s) +
		ratingComponent(s) +
		concededComponent(s) +
		cardsComponent(s) +
		resultComponent(s)

	return analytics.Clamp(analytics.Round1(score), MinScore, MaxScore), true
}

// ComputeReduced is the trend-charting variant for runs that lack per-player
// rating data. It is an explicitly different formula — goals, xG, and result
// components only — not an approximation of Compute.
func ComputeReduced(matches []model.MatchRecord) (float64, bool) {
	if len(matches) == 0 {
		return 0, false
	}
	s := sums(matches)

	score := goalsComponent(s) + xgComponent(s) + resultComponent(s)

	return analytics.Clamp(analytics.Round1(score), MinScore, MaxScore), true
}

// matchSums are the aggregate inputs every component reads. Collected in a
// single pass so both entry points share the same fold.
type matchSums struct {
	games        int
	wins         int
	goalsFor     int
	goalsAgainst int
	xgFor        float64
	xgAgainst    float64
	ratingSum    float64
	ratingCount  int
	yellow       int
	red          int
}

func sums(matches []model.MatchRecord) matchSums {
	var s matchSums
	s.games = len(matches)
	for i := range matches {
		m := &matches[i]
		if m.Result == model.Win {
			s.wins++
		}
		s.goalsFor += m.GoalsFor
		s.goalsAgainst += m.GoalsAgainst
		if m.TeamStats != nil {
			s.xgFor += m.TeamStats.ExpectedGoalsFor
			s.xgAgainst += m.TeamStats.ExpectedGoalsAgainst
		}
		for _, p := range m.PlayerStats {
			s.ratingSum += p.Rating
			s.ratingCount++
			s.yellow += p.YellowCards
			s.red += p.RedCards
		}
	}
	return s
}

func goalsComponent(s matchSums) float64 {
	avg := analytics.PerGame(float64(s.goalsFor), s.games)
	return min100(avg*GoalsPerGameScale) * WeightGoals
}

func xgComponent(s matchSums) float64 {
	raw := XGBaseline + (s.xgFor-s.xgAgainst)*XGDiffScale
	return min100(max0(raw)) * WeightXG
}

// ratingComponent uses the unweighted mean of every individual player
// appearance rating across the set, not per-match means averaged.
func ratingComponent(s matchSums) float64 {
	if s.ratingCount == 0 {
		return 0
	}
	avg := s.ratingSum / float64(s.ratingCount)
	return min100(avg / 10 * 100) * WeightRating
}

func concededComponent(s matchSums) float64 {
	avg := analytics.PerGame(float64(s.goalsAgainst), s.games)
	return min100(max0(100-avg*ConcededScale)) * WeightConceded
}

func cardsComponent(s matchSums) float64 {
	penalty := float64(s.yellow)*YellowCardCost + float64(s.red)*RedCardCost
	return min100(max0(100-penalty)) * WeightCards
}

func resultComponent(s matchSums) float64 {
	return analytics.Pct(s.wins, s.games) * WeightResult
}

func min100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

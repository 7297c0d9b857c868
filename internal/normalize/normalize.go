// Package normalize validates and shapes raw match input into the canonical
// MatchRecord used by everything downstream.
package normalize

import (
	"fmt"
	"strings"

	"champstats/internal/analytics"
	"champstats/internal/model"
)

// ValidationError identifies the offending field of a rejected raw record.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RawRecord is the unvalidated input shape supplied by the host. A zero
// value on an optional field means "not recorded".
type RawRecord struct {
	SequenceNumber int
	// Result as supplied by the caller. Ignored: the normalizer re-derives
	// it from the score line so UI state and derived result can never
	// disagree.
	Result string

	GoalsFor     int
	GoalsAgainst int

	OpponentSkill int
	StressLevel   int
	ServerQuality int

	DurationMinutes float64
	Context         string
	CrossPlay       *bool

	TeamStats   *model.TeamStats
	PlayerStats []model.PlayerPerformance
	Tags        []string
	TimeOfDay   string
}

// Match produces a canonical MatchRecord or a *ValidationError naming the
// bad field. Optional numeric fields outside their documented range are
// clamped rather than rejected, to tolerate minor upstream rounding.
// No side effects; the input is never mutated.
func Match(raw RawRecord) (model.MatchRecord, error) {
	var zero model.MatchRecord

	if raw.SequenceNumber < 1 {
		return zero, &ValidationError{Field: "sequenceNumber", Reason: "must be >= 1"}
	}
	if raw.GoalsFor < 0 {
		return zero, &ValidationError{Field: "goalsFor", Reason: "must be non-negative"}
	}
	if raw.GoalsAgainst < 0 {
		return zero, &ValidationError{Field: "goalsAgainst", Reason: "must be non-negative"}
	}
	if raw.DurationMinutes <= 0 {
		return zero, &ValidationError{Field: "durationMinutes", Reason: "must be positive"}
	}

	rec := model.MatchRecord{
		SequenceNumber:  raw.SequenceNumber,
		GoalsFor:        raw.GoalsFor,
		GoalsAgainst:    raw.GoalsAgainst,
		DurationMinutes: raw.DurationMinutes,
		Context:         model.ParseMatchContext(raw.Context),
		CrossPlay:       raw.CrossPlay,
		TimeOfDay:       normalizeTimeOfDay(raw.TimeOfDay),
	}

	// Result is derived, never trusted.
	if raw.GoalsFor > raw.GoalsAgainst {
		rec.Result = model.Win
	} else {
		rec.Result = model.Loss
	}

	rec.OpponentSkill = clampOptionalScale(raw.OpponentSkill)
	rec.StressLevel = clampOptionalScale(raw.StressLevel)
	rec.ServerQuality = clampOptionalScale(raw.ServerQuality)

	if raw.TeamStats != nil {
		ts := *raw.TeamStats
		ts.PossessionPct = analytics.Clamp(ts.PossessionPct, 0, 100)
		ts.PassAccuracyPct = analytics.Clamp(ts.PassAccuracyPct, 0, 100)
		if ts.ExpectedGoalsFor < 0 {
			ts.ExpectedGoalsFor = 0
		}
		if ts.ExpectedGoalsAgainst < 0 {
			ts.ExpectedGoalsAgainst = 0
		}
		ts.FoulsCommitted = maxInt(ts.FoulsCommitted, 0)
		ts.FoulsSuffered = maxInt(ts.FoulsSuffered, 0)
		rec.TeamStats = &ts
	}

	if len(raw.PlayerStats) > 0 {
		players := make([]model.PlayerPerformance, 0, len(raw.PlayerStats))
		for i, p := range raw.PlayerStats {
			if strings.TrimSpace(p.Name) == "" {
				return zero, &ValidationError{
					Field:  fmt.Sprintf("playerStats[%d].name", i),
					Reason: "must not be empty",
				}
			}
			p.Name = strings.TrimSpace(p.Name)
			p.Position = strings.ToUpper(strings.TrimSpace(p.Position))
			p.Rating = analytics.Round1(analytics.Clamp(p.Rating, 0, 10))
			p.Goals = maxInt(p.Goals, 0)
			p.Assists = maxInt(p.Assists, 0)
			p.MinutesPlayed = maxInt(p.MinutesPlayed, 0)
			p.YellowCards = maxInt(p.YellowCards, 0)
			p.RedCards = maxInt(p.RedCards, 0)
			players = append(players, p)
		}
		rec.PlayerStats = players
	}

	rec.Tags = normalizeTags(raw.Tags)

	return rec, nil
}

// clampOptionalScale clamps a recorded 1–10 value to range and passes the
// 0 "not recorded" sentinel through untouched.
func clampOptionalScale(v int) int {
	if v == 0 {
		return 0
	}
	return analytics.ClampInt(v, 1, 10)
}

// normalizeTags trims, lower-cases, and deduplicates tags, preserving first
// occurrence order. Commas are stripped (reserved as storage separator).
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(t, ",", "")))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalizeTimeOfDay keeps a parseable "HH:MM" string and drops anything else.
func normalizeTimeOfDay(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if analytics.BucketTimeOfDay(s) == analytics.DayPartUnknown {
		return ""
	}
	return s
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

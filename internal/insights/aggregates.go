package insights

import (
	"sort"

	"champstats/internal/analytics"
	"champstats/internal/config"
	"champstats/internal/model"
)

// Sample is a paired games/wins counter for one side of a bucket comparison.
type Sample struct {
	Games int
	Wins  int
}

// WinPct is the sample's win rate in percent, 0 when empty.
func (s Sample) WinPct() float64 {
	return analytics.Pct(s.Wins, s.Games)
}

func (s *Sample) add(won bool) {
	s.Games++
	if won {
		s.Wins++
	}
}

// Aggregates are the precomputed inputs shared by every rule. They are
// built once per Generate call by a single fold over the corpus; rules only
// read them.
type Aggregates struct {
	// Whole-corpus totals (historical runs plus the active run, if any).
	TotalGames   int
	Wins         int
	GoalsFor     int
	GoalsAgainst int

	// Recent form: the last cfg.RecentWindow matches in chronological order.
	Recent Sample

	// Opponent skill, one entry per match where it was recorded.
	SkillRatings []float64

	// Per-match goal differences in chronological order, for spread measures.
	GoalDiffs []float64

	// Per-player fold keyed by the explicit (name, position) tuple.
	Players map[model.PlayerKey]*model.PlayerAggregate

	// Context distribution.
	RageQuits int
	FreeWins  int

	// Penalty shootouts.
	Shootouts Sample

	// Time-of-day buckets.
	ByDayPart map[analytics.DayPart]*Sample

	// Paired bucket comparisons.
	ServerHigh, ServerLow Sample
	StressHigh, StressLow Sample
	ShortGames, LongGames Sample
	HighPoss, LowPoss     Sample
	CrossOn, CrossOff     Sample

	// Expected goals, over matches with recorded team stats.
	XGGames        int
	XGFor          float64
	XGAgainst      float64
	GoalsForWithXG int
	GoalsAgWithXG  int

	// Deterministic comeback count: explicit tag, or a win conceding >= 2
	// with a final margin <= 1.
	Comebacks int

	// In-progress run, when supplied.
	HasActive bool
	Active    Sample
}

// WinPct is the all-time win rate in percent.
func (a *Aggregates) WinPct() float64 {
	return analytics.Pct(a.Wins, a.TotalGames)
}

// AvgGoalsFor is goals scored per game across the corpus.
func (a *Aggregates) AvgGoalsFor() float64 {
	return analytics.PerGame(float64(a.GoalsFor), a.TotalGames)
}

// AvgGoalsAgainst is goals conceded per game across the corpus.
func (a *Aggregates) AvgGoalsAgainst() float64 {
	return analytics.PerGame(float64(a.GoalsAgainst), a.TotalGames)
}

// GoalDiffPerGame is the average per-game goal difference.
func (a *Aggregates) GoalDiffPerGame() float64 {
	return analytics.PerGame(float64(a.GoalsFor-a.GoalsAgainst), a.TotalGames)
}

// AvgOpponentSkill is the mean recorded opponent skill, 0 when unrecorded.
func (a *Aggregates) AvgOpponentSkill() float64 {
	return analytics.Mean(a.SkillRatings)
}

// GoalDiffSpread is the sample standard deviation of per-match goal
// difference, 0 with fewer than two games.
func (a *Aggregates) GoalDiffSpread() float64 {
	return analytics.StdDev(a.GoalDiffs)
}

// SortedPlayers returns the player aggregates ordered by average rating
// descending, appearances then name/position as deterministic tie-breaks.
func (a *Aggregates) SortedPlayers() []*model.PlayerAggregate {
	out := make([]*model.PlayerAggregate, 0, len(a.Players))
	for _, p := range a.Players {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].AvgRating(), out[j].AvgRating()
		if ri != rj {
			return ri > rj
		}
		if out[i].Appearances != out[j].Appearances {
			return out[i].Appearances > out[j].Appearances
		}
		if out[i].Key.Name != out[j].Key.Name {
			return out[i].Key.Name < out[j].Key.Name
		}
		return out[i].Key.Position < out[j].Key.Position
	})
	return out
}

// buildAggregates folds the full corpus — historical runs in order, matches
// by sequence number, the active run last — into the shared rule inputs.
func buildAggregates(historical []model.Run, active *model.Run, cfg config.Config) *Aggregates {
	agg := &Aggregates{
		Players:   make(map[model.PlayerKey]*model.PlayerAggregate),
		ByDayPart: make(map[analytics.DayPart]*Sample),
	}
	for _, dp := range analytics.DayParts {
		agg.ByDayPart[dp] = &Sample{}
	}

	var ordered []model.MatchRecord
	for i := range historical {
		ordered = append(ordered, sortedMatches(historical[i])...)
	}
	if active != nil {
		activeMatches := sortedMatches(*active)
		ordered = append(ordered, activeMatches...)
		agg.HasActive = true
		for i := range activeMatches {
			agg.Active.add(activeMatches[i].Result == model.Win)
		}
	}

	recentFrom := len(ordered) - cfg.RecentWindow
	if recentFrom < 0 {
		recentFrom = 0
	}

	for i := range ordered {
		m := &ordered[i]
		won := m.Result == model.Win

		agg.TotalGames++
		if won {
			agg.Wins++
		}
		agg.GoalsFor += m.GoalsFor
		agg.GoalsAgainst += m.GoalsAgainst
		agg.GoalDiffs = append(agg.GoalDiffs, float64(m.GoalDiff()))

		if i >= recentFrom {
			agg.Recent.add(won)
		}

		if m.OpponentSkill > 0 {
			agg.SkillRatings = append(agg.SkillRatings, float64(m.OpponentSkill))
		}

		foldPlayers(agg.Players, m.PlayerStats)

		switch m.Context {
		case model.ContextRageQuit:
			agg.RageQuits++
		case model.ContextFreeWin:
			agg.FreeWins++
		case model.ContextPenalties:
			agg.Shootouts.add(won)
		}

		if dp := analytics.BucketTimeOfDay(m.TimeOfDay); dp != analytics.DayPartUnknown {
			agg.ByDayPart[dp].add(won)
		}

		if m.ServerQuality > 0 {
			switch analytics.BucketScale(m.ServerQuality) {
			case analytics.BandHigh:
				agg.ServerHigh.add(won)
			case analytics.BandLow:
				agg.ServerLow.add(won)
			}
		}

		if m.StressLevel > 0 {
			switch analytics.BucketScale(m.StressLevel) {
			case analytics.BandHigh:
				agg.StressHigh.add(won)
			case analytics.BandLow:
				agg.StressLow.add(won)
			}
		}

		if analytics.IsShortGame(m.DurationMinutes) {
			agg.ShortGames.add(won)
		} else if analytics.IsLongGame(m.DurationMinutes) {
			agg.LongGames.add(won)
		}

		if m.TeamStats != nil {
			ts := m.TeamStats
			if ts.PossessionPct >= analytics.HighPossessionMinPct {
				agg.HighPoss.add(won)
			} else if ts.PossessionPct > 0 && ts.PossessionPct <= analytics.LowPossessionMaxPct {
				agg.LowPoss.add(won)
			}
			if ts.ExpectedGoalsFor > 0 || ts.ExpectedGoalsAgainst > 0 {
				agg.XGGames++
				agg.XGFor += ts.ExpectedGoalsFor
				agg.XGAgainst += ts.ExpectedGoalsAgainst
				agg.GoalsForWithXG += m.GoalsFor
				agg.GoalsAgWithXG += m.GoalsAgainst
			}
		}

		if m.CrossPlay != nil {
			if *m.CrossPlay {
				agg.CrossOn.add(won)
			} else {
				agg.CrossOff.add(won)
			}
		}

		if isComeback(m) {
			agg.Comebacks++
		}
	}

	return agg
}

// isComeback: an explicit "comeback" tag, or a win that conceded at least
// two goals and finished within a single goal.
func isComeback(m *model.MatchRecord) bool {
	if m.HasTag("comeback") {
		return true
	}
	return m.Result == model.Win && m.GoalsAgainst >= 2 && m.GoalDiff() <= 1
}

func foldPlayers(players map[model.PlayerKey]*model.PlayerAggregate, perfs []model.PlayerPerformance) {
	for _, p := range perfs {
		key := model.PlayerKey{Name: p.Name, Position: p.Position}
		pa := players[key]
		if pa == nil {
			pa = &model.PlayerAggregate{Key: key}
			players[key] = pa
		}
		pa.Appearances++
		pa.RatingSum += p.Rating
		pa.Goals += p.Goals
		pa.Assists += p.Assists
		pa.Minutes += p.MinutesPlayed
		pa.YellowCards += p.YellowCards
		pa.RedCards += p.RedCards
	}
}

// AggregatePlayers folds player appearances across a match set and returns
// them ordered by average rating descending with deterministic tie-breaks.
func AggregatePlayers(matches []model.MatchRecord) []*model.PlayerAggregate {
	players := make(map[model.PlayerKey]*model.PlayerAggregate)
	for i := range matches {
		foldPlayers(players, matches[i].PlayerStats)
	}
	tmp := Aggregates{Players: players}
	return tmp.SortedPlayers()
}

func sortedMatches(run model.Run) []model.MatchRecord {
	out := make([]model.MatchRecord, len(run.Matches))
	copy(out, run.Matches)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SequenceNumber < out[j].SequenceNumber
	})
	return out
}

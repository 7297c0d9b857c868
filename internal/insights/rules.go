package insights

import (
	"fmt"
	"math"

	"champstats/internal/analytics"
	"champstats/internal/config"
	"champstats/internal/model"
)

// A Rule inspects the shared aggregates and emits at most one insight.
// Rules are independent: none may depend on another rule having fired, and
// none may mutate the aggregates.
type Rule func(a *Aggregates, cfg config.Config) *model.Insight

// Minimum sample gates and spread thresholds per rule family.
const (
	minGamesBasic      = 5
	minGamesExtended   = 10
	minRecentGames     = 5
	minBucketGames     = 3
	minCrossPlayGames  = 5
	minShootoutGames   = 5
	minVeteranApps     = 10
	minPlayerApps      = 5
	minComebacks       = 3
	formDriftPts       = 15.0
	dayPartSpreadPts   = 20.0
	serverSpreadPts    = 15.0
	stressSpreadPts    = 15.0
	durationSpreadPts  = 15.0
	possessionSpread   = 15.0
	crossPlaySpreadPts = 20.0
	rageQuitRatePct    = 20.0
	xgDeltaPerGame     = 0.5
	volatileGDStdDev   = 2.5
	steadyGDStdDev     = 1.0
)

// battery is the ordered rule set Generate evaluates. Order only matters for
// equal (priority, confidence) pairs, where it keeps output deterministic.
var battery = []Rule{
	ruleWinRateTier,
	ruleRecentFormDrift,
	ruleAttackOutput,
	ruleDefenseOutput,
	ruleGoalDifference,
	ruleScorelineSpread,
	ruleOpponentSkill,
	ruleTopRatedPlayer,
	ruleBestScorer,
	ruleUnderperformingVeterans,
	ruleRageQuits,
	rulePenaltyShootouts,
	ruleTimeOfDay,
	ruleServerQuality,
	ruleStressLevel,
	ruleGameDuration,
	rulePossessionStyle,
	ruleCrossPlay,
	ruleXGAttack,
	ruleXGDefense,
	ruleCurrentRunForm,
	ruleComebacks,
}

// ---- Overall record ----

func ruleWinRateTier(a *Aggregates, cfg config.Config) *model.Insight {
	if a.TotalGames < minGamesBasic {
		return nil
	}
	wr := a.WinPct()
	record := fmt.Sprintf("%d-%d overall (%.0f%% win rate)", a.Wins, a.TotalGames-a.Wins, wr)

	switch {
	case wr >= 70:
		return &model.Insight{
			ID:          "win-rate-elite",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityLow,
			Confidence:  confidence(90, a.TotalGames),
			Title:       "Elite win rate",
			Description: fmt.Sprintf("You are winning %.0f%% of your matches, a top-tier conversion.", wr),
			Advice:      "Keep the current approach; focus on marginal gains rather than changes.",
			DataPoints:  []string{record},
		}
	case wr >= 50:
		return &model.Insight{
			ID:          "win-rate-solid",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(70, a.TotalGames),
			Title:       "Winning record",
			Description: fmt.Sprintf("A %.0f%% win rate keeps you above break-even.", wr),
			Advice:      "Review your losses for shared patterns to push past the next tier.",
			DataPoints:  []string{record},
		}
	case wr >= 35:
		return &model.Insight{
			ID:          "win-rate-below-even",
			Category:    model.CategoryWeakness,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(70, a.TotalGames),
			Title:       "Losing record",
			Description: fmt.Sprintf("You are winning only %.0f%% of your matches.", wr),
			Advice:      "Identify whether attack or defense is the bigger leak before changing both.",
			DataPoints:  []string{record},
		}
	default:
		return &model.Insight{
			ID:          "win-rate-struggling",
			Category:    model.CategoryWeakness,
			Priority:    model.PriorityHigh,
			Confidence:  confidence(85, a.TotalGames),
			Title:       "Win rate needs attention",
			Description: fmt.Sprintf("A %.0f%% win rate points to a fundamental problem, not variance.", wr),
			Advice:      "Go back to basics: squad fitness, formation familiarity, and set defending.",
			DataPoints:  []string{record},
		}
	}
}

func ruleRecentFormDrift(a *Aggregates, cfg config.Config) *model.Insight {
	if a.Recent.Games < minRecentGames || a.TotalGames < minGamesBasic {
		return nil
	}
	recent := a.Recent.WinPct()
	overall := a.WinPct()
	delta := recent - overall
	if math.Abs(delta) < formDriftPts {
		return nil
	}
	points := []string{
		fmt.Sprintf("last %d games: %.0f%% win rate", a.Recent.Games, recent),
		fmt.Sprintf("all-time: %.0f%% win rate", overall),
	}
	if delta > 0 {
		return &model.Insight{
			ID:          "form-upswing",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(75, a.Recent.Games*2),
			Title:       "Form is trending up",
			Description: fmt.Sprintf("Your recent win rate is %.0f points above your all-time baseline.", delta),
			Advice:      "Whatever changed recently is working; note it down before it fades.",
			DataPoints:  points,
		}
	}
	return &model.Insight{
		ID:          "form-slump",
		Category:    model.CategoryThreat,
		Priority:    model.PriorityHigh,
		Confidence:  confidence(75, a.Recent.Games*2),
		Title:       "Form is slipping",
		Description: fmt.Sprintf("Your recent win rate is %.0f points below your all-time baseline.", -delta),
		Advice:      "Take a break or review recent losses; slumps compound when forced.",
		DataPoints:  points,
	}
}

// ---- Attack / defense output ----

func ruleAttackOutput(a *Aggregates, cfg config.Config) *model.Insight {
	if a.TotalGames < minGamesBasic {
		return nil
	}
	gf := a.AvgGoalsFor()
	point := fmt.Sprintf("%.2f goals scored per game over %d games", gf, a.TotalGames)
	switch {
	case gf >= 3.0:
		return &model.Insight{
			ID:          "attack-prolific",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityHigh,
			Confidence:  confidence(90, a.TotalGames),
			Title:       "Prolific attack",
			Description: fmt.Sprintf("Averaging %.1f goals per game puts your attack in the top bracket.", gf),
			Advice:      "Your attack wins games; invest improvement time elsewhere.",
			DataPoints:  []string{point},
		}
	case gf >= 2.25:
		return &model.Insight{
			ID:          "attack-strong",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(70, a.TotalGames),
			Title:       "Strong attacking output",
			Description: fmt.Sprintf("%.1f goals per game is comfortably above average.", gf),
			Advice:      "Chance creation is healthy; sharpen finishing in high-pressure spots.",
			DataPoints:  []string{point},
		}
	case gf < 1.25:
		return &model.Insight{
			ID:          "attack-blunt",
			Category:    model.CategoryWeakness,
			Priority:    model.PriorityHigh,
			Confidence:  confidence(85, a.TotalGames),
			Title:       "Attack is misfiring",
			Description: fmt.Sprintf("%.1f goals per game is not enough to win consistently.", gf),
			Advice:      "Work on build-up patterns and shot selection in the skill games.",
			DataPoints:  []string{point},
		}
	default:
		return nil
	}
}

func ruleDefenseOutput(a *Aggregates, cfg config.Config) *model.Insight {
	if a.TotalGames < minGamesBasic {
		return nil
	}
	ga := a.AvgGoalsAgainst()
	point := fmt.Sprintf("%.2f goals conceded per game over %d games", ga, a.TotalGames)
	switch {
	case ga < 1.0:
		return &model.Insight{
			ID:          "defense-elite",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityHigh,
			Confidence:  confidence(90, a.TotalGames),
			Title:       "Elite defense",
			Description: fmt.Sprintf("Conceding under a goal per game (%.1f) is an elite defensive record.", ga),
			Advice:      "Your defense travels; it will hold up against stronger opposition.",
			DataPoints:  []string{point},
		}
	case ga < 1.5:
		return &model.Insight{
			ID:          "defense-solid",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(70, a.TotalGames),
			Title:       "Solid defense",
			Description: fmt.Sprintf("%.1f conceded per game keeps most games winnable.", ga),
			Advice:      "Tighten up late-game defending to move into the elite bracket.",
			DataPoints:  []string{point},
		}
	case ga > 2.5:
		return &model.Insight{
			ID:          "defense-leaky",
			Category:    model.CategoryWeakness,
			Priority:    model.PriorityHigh,
			Confidence:  confidence(85, a.TotalGames),
			Title:       "Defense is leaking",
			Description: fmt.Sprintf("Conceding %.1f per game forces your attack to be perfect.", ga),
			Advice:      "Practice manual defending and stop chasing the ball with defenders.",
			DataPoints:  []string{point},
		}
	default:
		return nil
	}
}

func ruleGoalDifference(a *Aggregates, cfg config.Config) *model.Insight {
	if a.TotalGames < minGamesExtended {
		return nil
	}
	gd := a.GoalDiffPerGame()
	point := fmt.Sprintf("%+.2f goal difference per game over %d games", gd, a.TotalGames)
	if gd >= 1.5 {
		return &model.Insight{
			ID:          "goal-diff-dominant",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(80, a.TotalGames),
			Title:       "Dominant scorelines",
			Description: fmt.Sprintf("A %+.1f goal difference per game means you control most matches.", gd),
			Advice:      "You outclass your current bracket; expect tougher matchmaking.",
			DataPoints:  []string{point},
		}
	}
	if gd <= -1.0 {
		return &model.Insight{
			ID:          "goal-diff-underwater",
			Category:    model.CategoryWeakness,
			Priority:    model.PriorityHigh,
			Confidence:  confidence(80, a.TotalGames),
			Title:       "Consistently outscored",
			Description: fmt.Sprintf("A %+.1f goal difference per game means losses are not close.", gd),
			Advice:      "Prioritize damage control: stop conceding in clusters after going behind.",
			DataPoints:  []string{point},
		}
	}
	return nil
}

// ruleScorelineSpread reads the standard deviation of per-match goal
// difference: a wide spread means blowouts both ways, a tight one means the
// same game over and over.
func ruleScorelineSpread(a *Aggregates, cfg config.Config) *model.Insight {
	if a.TotalGames < minGamesExtended {
		return nil
	}
	sd := a.GoalDiffSpread()
	point := fmt.Sprintf("goal-difference spread %.1f over %d games", sd, a.TotalGames)
	if sd >= volatileGDStdDev {
		return &model.Insight{
			ID:          "results-volatile",
			Category:    model.CategoryThreat,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(70, a.TotalGames),
			Title:       "Results swing wildly",
			Description: fmt.Sprintf("Your scorelines vary by %.1f goals around your average margin.", sd),
			Advice:      "Close out games you lead and cut losses early; volatility costs rewards.",
			DataPoints:  []string{point},
		}
	}
	if sd <= steadyGDStdDev {
		return &model.Insight{
			ID:          "results-steady",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityLow,
			Confidence:  confidence(70, a.TotalGames),
			Title:       "Remarkably steady scorelines",
			Description: fmt.Sprintf("Your goal difference varies by only %.1f per game.", sd),
			Advice:      "Consistency scales; small systematic improvements lift every result.",
			DataPoints:  []string{point},
		}
	}
	return nil
}

// ---- Opposition context ----

func ruleOpponentSkill(a *Aggregates, cfg config.Config) *model.Insight {
	// Gated on rated games, not total games: an unrated match carries no
	// information about the schedule.
	rated := len(a.SkillRatings)
	if rated < minGamesExtended {
		return nil
	}
	skill := a.AvgOpponentSkill()
	point := fmt.Sprintf("average opponent skill %.1f/10 over %d rated games", skill, rated)
	if skill >= 7.5 {
		return &model.Insight{
			ID:          "opposition-elite",
			Category:    model.CategoryThreat,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(75, rated),
			Title:       "Facing elite competition",
			Description: fmt.Sprintf("Your average opponent rates %.1f/10; your record carries extra weight.", skill),
			Advice:      "Judge your form against the opposition level, not raw win rate.",
			DataPoints:  []string{point},
		}
	}
	if skill <= 4.5 {
		return &model.Insight{
			ID:          "opposition-weak",
			Category:    model.CategoryThreat,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(75, rated),
			Title:       "Soft schedule",
			Description: fmt.Sprintf("Your average opponent rates only %.1f/10; results may flatter your level.", skill),
			Advice:      "Expect a correction when matchmaking tightens; keep standards high.",
			DataPoints:  []string{point},
		}
	}
	return nil
}

// ---- Squad ----

func ruleTopRatedPlayer(a *Aggregates, cfg config.Config) *model.Insight {
	var best *model.PlayerAggregate
	for _, p := range a.SortedPlayers() {
		if p.Appearances >= minPlayerApps {
			best = p
			break
		}
	}
	if best == nil {
		return nil
	}
	return &model.Insight{
		ID:         "player-top-rated",
		Category:   model.CategoryStrength,
		Priority:   model.PriorityMedium,
		Confidence: confidence(80, best.Appearances*2),
		Title:      fmt.Sprintf("%s is your standout performer", best.Key.Name),
		Description: fmt.Sprintf("%s (%s) averages a %.1f rating across %d appearances.",
			best.Key.Name, best.Key.Position, best.AvgRating(), best.Appearances),
		Advice: "Build your game plan around this player's strengths.",
		DataPoints: []string{
			fmt.Sprintf("%.1f avg rating, %d goals, %d assists", best.AvgRating(), best.Goals, best.Assists),
		},
	}
}

func ruleBestScorer(a *Aggregates, cfg config.Config) *model.Insight {
	var best *model.PlayerAggregate
	for _, p := range a.Players {
		if p.Appearances < minPlayerApps || p.GoalsPerGame() < 1.0 {
			continue
		}
		if best == nil || betterScorer(p, best) {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	return &model.Insight{
		ID:         "player-clinical-scorer",
		Category:   model.CategoryStrength,
		Priority:   model.PriorityMedium,
		Confidence: confidence(80, best.Appearances*2),
		Title:      fmt.Sprintf("%s is a reliable goal source", best.Key.Name),
		Description: fmt.Sprintf("%s (%s) scores %.2f goals per game over %d appearances.",
			best.Key.Name, best.Key.Position, best.GoalsPerGame(), best.Appearances),
		Advice: "Funnel chances through this player when you need a goal.",
		DataPoints: []string{
			fmt.Sprintf("%d goals in %d games", best.Goals, best.Appearances),
		},
	}
}

// betterScorer orders by goals per game, then appearances, then key, so the
// single surfaced scorer is deterministic.
func betterScorer(a, b *model.PlayerAggregate) bool {
	ga, gb := a.GoalsPerGame(), b.GoalsPerGame()
	if ga != gb {
		return ga > gb
	}
	if a.Appearances != b.Appearances {
		return a.Appearances > b.Appearances
	}
	if a.Key.Name != b.Key.Name {
		return a.Key.Name < b.Key.Name
	}
	return a.Key.Position < b.Key.Position
}

func ruleUnderperformingVeterans(a *Aggregates, cfg config.Config) *model.Insight {
	var weak []*model.PlayerAggregate
	for _, p := range a.SortedPlayers() {
		if p.Appearances >= minVeteranApps && p.AvgRating() < 6.5 {
			weak = append(weak, p)
		}
	}
	if len(weak) == 0 {
		return nil
	}
	// SortedPlayers is rating-descending; the worst offenders are at the tail.
	if len(weak) > 3 {
		weak = weak[len(weak)-3:]
	}
	points := make([]string, 0, len(weak))
	for _, p := range weak {
		points = append(points, fmt.Sprintf("%s (%s): %.1f avg rating over %d games",
			p.Key.Name, p.Key.Position, p.AvgRating(), p.Appearances))
	}
	return &model.Insight{
		ID:          "players-underperforming",
		Category:    model.CategoryOpportunity,
		Priority:    model.PriorityMedium,
		Confidence:  confidence(75, a.TotalGames),
		Title:       "Regular starters underperforming",
		Description: fmt.Sprintf("%d high-minute players average below a 6.5 rating.", len(weak)),
		Advice:      "Consider replacements; these slots are costing you rating points weekly.",
		DataPoints:  points,
	}
}

// ---- Context distribution ----

func ruleRageQuits(a *Aggregates, cfg config.Config) *model.Insight {
	if a.TotalGames < minGamesExtended {
		return nil
	}
	rate := float64(a.RageQuits) / float64(a.TotalGames) * 100
	if rate < rageQuitRatePct {
		return nil
	}
	return &model.Insight{
		ID:          "opponents-rage-quit",
		Category:    model.CategoryOpportunity,
		Priority:    model.PriorityLow,
		Confidence:  confidence(70, a.TotalGames),
		Title:       "Opponents quit on you",
		Description: fmt.Sprintf("%.0f%% of your matches end in an opponent rage quit.", rate),
		Advice:      "Early pressure is tilting opponents; keep starting fast.",
		DataPoints:  []string{fmt.Sprintf("%d rage quits in %d games", a.RageQuits, a.TotalGames)},
	}
}

func rulePenaltyShootouts(a *Aggregates, cfg config.Config) *model.Insight {
	if a.Shootouts.Games < minShootoutGames {
		return nil
	}
	wr := a.Shootouts.WinPct()
	point := fmt.Sprintf("%d-%d in shootouts", a.Shootouts.Wins, a.Shootouts.Games-a.Shootouts.Wins)
	if wr >= 70 {
		return &model.Insight{
			ID:          "penalties-specialist",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityLow,
			Confidence:  confidence(75, a.Shootouts.Games*3),
			Title:       "Penalty shootout specialist",
			Description: fmt.Sprintf("You win %.0f%% of penalty shootouts.", wr),
			Advice:      "In tight extra-time games, playing for penalties is a legitimate plan.",
			DataPoints:  []string{point},
		}
	}
	if wr <= 30 {
		return &model.Insight{
			ID:          "penalties-weakness",
			Category:    model.CategoryWeakness,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(75, a.Shootouts.Games*3),
			Title:       "Penalty shootouts are costing you",
			Description: fmt.Sprintf("You win only %.0f%% of penalty shootouts.", wr),
			Advice:      "Practice penalties in the skill games and push harder to win in extra time.",
			DataPoints:  []string{point},
		}
	}
	return nil
}

// ---- Paired bucket comparisons ----

func ruleTimeOfDay(a *Aggregates, cfg config.Config) *model.Insight {
	type bucketRate struct {
		part string
		s    Sample
	}
	var rated []bucketRate
	for _, dp := range analytics.DayParts {
		s := a.ByDayPart[dp]
		if s != nil && s.Games >= minBucketGames {
			rated = append(rated, bucketRate{dp.String(), *s})
		}
	}
	if len(rated) < 2 {
		return nil
	}
	best, worst := rated[0], rated[0]
	for _, r := range rated[1:] {
		if r.s.WinPct() > best.s.WinPct() {
			best = r
		}
		if r.s.WinPct() < worst.s.WinPct() {
			worst = r
		}
	}
	spread := best.s.WinPct() - worst.s.WinPct()
	if spread < dayPartSpreadPts {
		return nil
	}
	return &model.Insight{
		ID:         "time-of-day-split",
		Category:   model.CategoryOpportunity,
		Priority:   model.PriorityMedium,
		Confidence: confidence(70, best.s.Games+worst.s.Games),
		Title:      fmt.Sprintf("You play best in the %s", best.part),
		Description: fmt.Sprintf("%.0f%% win rate in the %s vs %.0f%% in the %s.",
			best.s.WinPct(), best.part, worst.s.WinPct(), worst.part),
		Advice: fmt.Sprintf("Schedule your runs for the %s and avoid %s sessions when the result matters.",
			best.part, worst.part),
		DataPoints: []string{
			fmt.Sprintf("%s: %d-%d", best.part, best.s.Wins, best.s.Games-best.s.Wins),
			fmt.Sprintf("%s: %d-%d", worst.part, worst.s.Wins, worst.s.Games-worst.s.Wins),
		},
	}
}

func ruleServerQuality(a *Aggregates, cfg config.Config) *model.Insight {
	return pairedComparison(pairedRule{
		id:        "server-quality-impact",
		high:      a.ServerHigh, low: a.ServerLow,
		minGames:  minBucketGames,
		spreadPts: serverSpreadPts,
		category:  model.CategoryThreat,
		priority:  model.PriorityMedium,
		title:     "Server quality decides your games",
		describe: func(hi, lo float64) string {
			return fmt.Sprintf("You win %.0f%% on good servers but only %.0f%% on bad ones.", hi, lo)
		},
		advice:    "Back out of laggy lobbies early; the record hit is smaller than a forced loss.",
		highLabel: "good servers", lowLabel: "bad servers",
	})
}

func ruleStressLevel(a *Aggregates, cfg config.Config) *model.Insight {
	return pairedComparison(pairedRule{
		id:        "stress-impact",
		high:      a.StressLow, low: a.StressHigh, // relaxed is the "good" side
		minGames:  minBucketGames,
		spreadPts: stressSpreadPts,
		category:  model.CategoryWeakness,
		priority:  model.PriorityMedium,
		title:     "Stress is costing you games",
		describe: func(hi, lo float64) string {
			return fmt.Sprintf("You win %.0f%% when relaxed but only %.0f%% when stressed.", hi, lo)
		},
		advice:    "Stop playing when tilted; two calm games beat five stressed ones.",
		highLabel: "low stress", lowLabel: "high stress",
	})
}

func ruleGameDuration(a *Aggregates, cfg config.Config) *model.Insight {
	return pairedComparison(pairedRule{
		id:        "game-duration-split",
		high:      a.ShortGames, low: a.LongGames,
		minGames:  minBucketGames,
		spreadPts: durationSpreadPts,
		category:  model.CategoryOpportunity,
		priority:  model.PriorityLow,
		title:     "Short games suit you",
		describe: func(hi, lo float64) string {
			return fmt.Sprintf("You win %.0f%% of short games but %.0f%% of long ones.", hi, lo)
		},
		advice:    "Decide games early; your edge fades the longer a match drags on.",
		highLabel: "short games", lowLabel: "long games",
		invertOK:  true,
		invertedTitle: "Long games suit you",
		invertedDescribe: func(hi, lo float64) string {
			return fmt.Sprintf("You win %.0f%% of long games but %.0f%% of short ones.", hi, lo)
		},
		invertedAdvice: "Patience pays for you; slow games down and trust the late winner.",
	})
}

func rulePossessionStyle(a *Aggregates, cfg config.Config) *model.Insight {
	return pairedComparison(pairedRule{
		id:        "possession-style",
		high:      a.HighPoss, low: a.LowPoss,
		minGames:  minBucketGames,
		spreadPts: possessionSpread,
		category:  model.CategoryOpportunity,
		priority:  model.PriorityMedium,
		title:     "Possession play wins you games",
		describe: func(hi, lo float64) string {
			return fmt.Sprintf("You win %.0f%% when dominating the ball but %.0f%% when ceding it.", hi, lo)
		},
		advice:    "Lean into a possession game plan; it is your winning style.",
		highLabel: "high possession", lowLabel: "low possession",
		invertOK:  true,
		invertedTitle: "Counter-attacking wins you games",
		invertedDescribe: func(hi, lo float64) string {
			return fmt.Sprintf("You win %.0f%% when ceding the ball but %.0f%% when dominating it.", hi, lo)
		},
		invertedAdvice: "Sit deeper and break fast; chasing possession is hurting your record.",
	})
}

func ruleCrossPlay(a *Aggregates, cfg config.Config) *model.Insight {
	return pairedComparison(pairedRule{
		id:        "cross-play-impact",
		high:      a.CrossOff, low: a.CrossOn,
		minGames:  minCrossPlayGames,
		spreadPts: crossPlaySpreadPts,
		category:  model.CategoryOpportunity,
		priority:  model.PriorityLow,
		title:     "Cross-play off suits you",
		describe: func(hi, lo float64) string {
			return fmt.Sprintf("You win %.0f%% with cross-play off but only %.0f%% with it on.", hi, lo)
		},
		advice:    "Disable cross-play when the option is available.",
		highLabel: "cross-play off", lowLabel: "cross-play on",
		invertOK:  true,
		invertedTitle: "Cross-play on suits you",
		invertedDescribe: func(hi, lo float64) string {
			return fmt.Sprintf("You win %.0f%% with cross-play on but only %.0f%% with it off.", hi, lo)
		},
		invertedAdvice: "Keep cross-play enabled; the wider pool works in your favor.",
	})
}

// pairedRule is the shared shape of the high/low bucket comparisons. The
// "high" side is the nominally favorable bucket; when invertOK is set and
// the low side wins by the spread instead, the inverted wording is used.
type pairedRule struct {
	id               string
	high, low        Sample
	minGames         int
	spreadPts        float64
	category         model.InsightCategory
	priority         model.InsightPriority
	title            string
	describe         func(hi, lo float64) string
	advice           string
	highLabel        string
	lowLabel         string
	invertOK         bool
	invertedTitle    string
	invertedDescribe func(hi, lo float64) string
	invertedAdvice   string
}

func pairedComparison(r pairedRule) *model.Insight {
	if r.high.Games < r.minGames || r.low.Games < r.minGames {
		return nil
	}
	hi, lo := r.high.WinPct(), r.low.WinPct()
	points := []string{
		fmt.Sprintf("%s: %d-%d", r.highLabel, r.high.Wins, r.high.Games-r.high.Wins),
		fmt.Sprintf("%s: %d-%d", r.lowLabel, r.low.Wins, r.low.Games-r.low.Wins),
	}
	if hi-lo >= r.spreadPts {
		return &model.Insight{
			ID:          r.id,
			Category:    r.category,
			Priority:    r.priority,
			Confidence:  confidence(70, r.high.Games+r.low.Games),
			Title:       r.title,
			Description: r.describe(hi, lo),
			Advice:      r.advice,
			DataPoints:  points,
		}
	}
	if r.invertOK && lo-hi >= r.spreadPts {
		return &model.Insight{
			ID:          r.id + "-inverted",
			Category:    r.category,
			Priority:    r.priority,
			Confidence:  confidence(70, r.high.Games+r.low.Games),
			Title:       r.invertedTitle,
			Description: r.invertedDescribe(lo, hi),
			Advice:      r.invertedAdvice,
			DataPoints:  points,
		}
	}
	return nil
}

// ---- Expected goals ----

func ruleXGAttack(a *Aggregates, cfg config.Config) *model.Insight {
	if a.XGGames < minGamesExtended {
		return nil
	}
	delta := (float64(a.GoalsForWithXG) - a.XGFor) / float64(a.XGGames)
	point := fmt.Sprintf("%d goals from %.1f xG over %d games", a.GoalsForWithXG, a.XGFor, a.XGGames)
	if delta >= xgDeltaPerGame {
		return &model.Insight{
			ID:          "xg-clinical",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityMedium,
			Confidence:  confidence(75, a.XGGames),
			Title:       "Clinical finishing",
			Description: fmt.Sprintf("You outscore your xG by %.1f per game; finishing is a real strength.", delta),
			Advice:      "Keep shooting on sight; your conversion justifies ambitious attempts.",
			DataPoints:  []string{point},
		}
	}
	if delta <= -xgDeltaPerGame {
		return &model.Insight{
			ID:          "xg-wasteful",
			Category:    model.CategoryWeakness,
			Priority:    model.PriorityHigh,
			Confidence:  confidence(75, a.XGGames),
			Title:       "Wasteful in front of goal",
			Description: fmt.Sprintf("You score %.1f fewer goals per game than your chances warrant.", -delta),
			Advice:      "The chances are there; work on shot timing and finishing technique.",
			DataPoints:  []string{point},
		}
	}
	return nil
}

func ruleXGDefense(a *Aggregates, cfg config.Config) *model.Insight {
	if a.XGGames < minGamesExtended {
		return nil
	}
	delta := (float64(a.GoalsAgWithXG) - a.XGAgainst) / float64(a.XGGames)
	point := fmt.Sprintf("%d conceded from %.1f xG against over %d games", a.GoalsAgWithXG, a.XGAgainst, a.XGGames)
	if delta <= -xgDeltaPerGame {
		return &model.Insight{
			ID:          "xg-keeper-overdelivers",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityLow,
			Confidence:  confidence(70, a.XGGames),
			Title:       "Goalkeeper bailing you out",
			Description: fmt.Sprintf("You concede %.1f fewer goals per game than the chances against suggest.", -delta),
			Advice:      "Do not rely on saves forever; cut down the chances you give up.",
			DataPoints:  []string{point},
		}
	}
	if delta >= xgDeltaPerGame {
		return &model.Insight{
			ID:          "xg-soft-goals",
			Category:    model.CategoryWeakness,
			Priority:    model.PriorityHigh,
			Confidence:  confidence(75, a.XGGames),
			Title:       "Conceding soft goals",
			Description: fmt.Sprintf("You concede %.1f more goals per game than the chances against warrant.", delta),
			Advice:      "Review goalkeeper choice and near-post positioning; these goals are avoidable.",
			DataPoints:  []string{point},
		}
	}
	return nil
}

// ---- Current run ----

func ruleCurrentRunForm(a *Aggregates, cfg config.Config) *model.Insight {
	if !a.HasActive || a.Active.Games < minGamesBasic {
		return nil
	}
	current := a.Active.WinPct()
	overall := a.WinPct()
	delta := current - overall
	if math.Abs(delta) < formDriftPts {
		return nil
	}
	points := []string{
		fmt.Sprintf("current run: %d-%d", a.Active.Wins, a.Active.Games-a.Active.Wins),
		fmt.Sprintf("all-time: %.0f%% win rate", overall),
	}
	if delta > 0 {
		return &model.Insight{
			ID:          "current-run-hot",
			Category:    model.CategoryStrength,
			Priority:    model.PriorityHigh,
			Confidence:  confidence(80, a.Active.Games*3),
			Title:       "This run is above your baseline",
			Description: fmt.Sprintf("You are winning %.0f%% this run, %.0f points above your all-time rate.", current, delta),
			Advice:      "Protect the streak: take breaks between games and stop while ahead.",
			DataPoints:  points,
		}
	}
	return &model.Insight{
		ID:          "current-run-cold",
		Category:    model.CategoryThreat,
		Priority:    model.PriorityHigh,
		Confidence:  confidence(80, a.Active.Games*3),
		Title:       "This run is below your baseline",
		Description: fmt.Sprintf("You are winning %.0f%% this run, %.0f points below your all-time rate.", current, -delta),
		Advice:      "Walk away for an hour; finishing the run tilted will cost more rewards.",
		DataPoints:  points,
	}
}

func ruleComebacks(a *Aggregates, cfg config.Config) *model.Insight {
	if a.Comebacks < minComebacks {
		return nil
	}
	return &model.Insight{
		ID:          "comeback-pattern",
		Category:    model.CategoryStrength,
		Priority:    model.PriorityMedium,
		Confidence:  confidence(75, a.Comebacks*10),
		Title:       "You do not stay down",
		Description: fmt.Sprintf("%d of your wins were comebacks from losing positions.", a.Comebacks),
		Advice:      "Mentality is a weapon; never concede a game early.",
		DataPoints:  []string{fmt.Sprintf("%d comeback wins recorded", a.Comebacks)},
	}
}

// confidence scales a base confidence by sample size, capped at 95.
// Deterministic by construction.
func confidence(base, sample int) int {
	c := base + sample/4
	if c > 95 {
		c = 95
	}
	return c
}

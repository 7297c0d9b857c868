package model

// Result is the outcome of a single match.
type Result int

const (
	Loss Result = 0
	Win  Result = 1
)

func (r Result) String() string {
	if r == Win {
		return "W"
	}
	return "L"
}

// MatchContext classifies how a match ended or was played.
type MatchContext int

const (
	ContextNormal MatchContext = iota
	ContextRageQuit
	ContextExtraTime
	ContextPenalties
	ContextDisconnect
	ContextHacker
	ContextFreeWin
)

func (c MatchContext) String() string {
	switch c {
	case ContextRageQuit:
		return "rage-quit"
	case ContextExtraTime:
		return "extra-time"
	case ContextPenalties:
		return "penalties"
	case ContextDisconnect:
		return "disconnect"
	case ContextHacker:
		return "hacker"
	case ContextFreeWin:
		return "free-win"
	default:
		return "normal"
	}
}

// ParseMatchContext maps a context label back to its enum value.
// Unknown labels map to ContextNormal.
func ParseMatchContext(s string) MatchContext {
	switch s {
	case "rage-quit":
		return ContextRageQuit
	case "extra-time":
		return ContextExtraTime
	case "penalties":
		return ContextPenalties
	case "disconnect":
		return ContextDisconnect
	case "hacker":
		return ContextHacker
	case "free-win":
		return ContextFreeWin
	default:
		return ContextNormal
	}
}

// TeamStats holds per-match team-level statistics for the logging player's
// side, plus the opponent-facing xG estimate.
type TeamStats struct {
	PossessionPct        float64
	ExpectedGoalsFor     float64
	ExpectedGoalsAgainst float64
	PassAccuracyPct      float64
	FoulsCommitted       int
	FoulsSuffered        int
}

// PlayerPerformance is one player appearance in one match.
type PlayerPerformance struct {
	Name          string
	Position      string
	Rating        float64 // 0–10, one decimal
	Goals         int
	Assists       int
	MinutesPlayed int
	YellowCards   int
	RedCards      int
}

// MatchRecord is one completed match, already normalized.
// Result always agrees with the score line; the normalizer derives it.
type MatchRecord struct {
	SequenceNumber int // 1-based position within its run
	Result         Result
	GoalsFor       int
	GoalsAgainst   int

	// Optional 1–10 scale context; 0 means not recorded.
	OpponentSkill int
	StressLevel   int
	ServerQuality int

	DurationMinutes float64
	Context         MatchContext

	// CrossPlay is tri-state: nil when not recorded.
	CrossPlay *bool

	TeamStats   *TeamStats
	PlayerStats []PlayerPerformance
	Tags        []string
	TimeOfDay   string // "HH:MM" local time, empty when not recorded
}

// HasTag reports whether the record carries the given normalized tag.
func (m *MatchRecord) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// GoalDiff is goalsFor − goalsAgainst.
func (m *MatchRecord) GoalDiff() int {
	return m.GoalsFor - m.GoalsAgainst
}

// Run is one bounded, append-only sequence of matches (a weekly league).
// Matches are ordered by SequenceNumber. Once completed, a run is frozen.
type Run struct {
	RunID       string
	DisplayName string
	StartDate   string
	EndDate     string // empty while in progress
	IsCompleted bool
	Matches     []MatchRecord

	// CachedCPS is a denormalized copy of the last computed composite score.
	// Always recomputable from Matches, never a source of truth.
	CachedCPS      float64
	CachedCPSValid bool
}

// Wins counts won matches.
func (r *Run) Wins() int {
	n := 0
	for i := range r.Matches {
		if r.Matches[i].Result == Win {
			n++
		}
	}
	return n
}

// Losses counts lost matches.
func (r *Run) Losses() int {
	return len(r.Matches) - r.Wins()
}

// ChunkRecord is the record over one contiguous sub-range of a run's matches.
// GameCount 0 means "no data", not a legitimate 0-0 record.
type ChunkRecord struct {
	Wins         int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	GameCount    int
}

// GoalDiff is the chunk's goal difference.
func (c ChunkRecord) GoalDiff() int {
	return c.GoalsFor - c.GoalsAgainst
}

// InsightCategory classifies an insight SWOT-style.
type InsightCategory int

const (
	CategoryStrength InsightCategory = iota
	CategoryWeakness
	CategoryOpportunity
	CategoryThreat
)

func (c InsightCategory) String() string {
	switch c {
	case CategoryStrength:
		return "STRENGTH"
	case CategoryWeakness:
		return "WEAKNESS"
	case CategoryOpportunity:
		return "OPPORTUNITY"
	default:
		return "THREAT"
	}
}

// InsightPriority ranks insights for display. Higher sorts first.
type InsightPriority int

const (
	PriorityLow InsightPriority = iota
	PriorityMedium
	PriorityHigh
)

func (p InsightPriority) String() string {
	switch p {
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Insight is one ranked, categorized observation produced by the rule engine.
type Insight struct {
	ID          string
	Category    InsightCategory
	Priority    InsightPriority
	Confidence  int // 0–100
	Title       string
	Description string
	Advice      string
	DataPoints  []string
}

// PlayerKey identifies a player appearance series. Name and position form an
// explicit tuple so the same name on two positions aggregates separately.
type PlayerKey struct {
	Name     string
	Position string
}

// PlayerAggregate holds one player's stats folded across all matches.
type PlayerAggregate struct {
	Key         PlayerKey
	Appearances int
	RatingSum   float64
	Goals       int
	Assists     int
	Minutes     int
	YellowCards int
	RedCards    int
}

// AvgRating is the unweighted mean rating across appearances.
func (a *PlayerAggregate) AvgRating() float64 {
	if a.Appearances == 0 {
		return 0
	}
	return a.RatingSum / float64(a.Appearances)
}

// GoalsPerGame is goals per appearance.
func (a *PlayerAggregate) GoalsPerGame() float64 {
	if a.Appearances == 0 {
		return 0
	}
	return float64(a.Goals) / float64(a.Appearances)
}

// AssistsPerGame is assists per appearance.
func (a *PlayerAggregate) AssistsPerGame() float64 {
	if a.Appearances == 0 {
		return 0
	}
	return float64(a.Assists) / float64(a.Appearances)
}

// RunSummary is a lightweight record for list commands.
type RunSummary struct {
	RunID        string
	DisplayName  string
	StartDate    string
	EndDate      string
	IsCompleted  bool
	GameCount    int
	Wins         int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	CachedCPS    float64
	HasCachedCPS bool
}

// Package analytics holds the small aggregation helpers shared by the score
// calculator, the form analyzer, and the insight engine: guarded rates,
// means, clamping, and the bucketing of continuous values into the discrete
// ranges the rules compare.
package analytics

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Rate returns part/total as a fraction, or 0 when total is 0.
func Rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// Pct returns part/total as a percentage, or 0 when total is 0.
func Pct(part, total int) float64 {
	return Rate(part, total) * 100
}

// PerGame returns sum/games, or 0 when games is 0.
func PerGame(sum float64, games int) float64 {
	if games == 0 {
		return 0
	}
	return sum / float64(games)
}

// Mean returns the arithmetic mean of vals, or 0 for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// StdDev returns the sample standard deviation of vals, or 0 when fewer than
// two samples are present.
func StdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	return stat.StdDev(vals, nil)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ---- Bucketing ----

// DayPart is a coarse time-of-day bucket.
type DayPart int

const (
	DayPartUnknown DayPart = iota
	Morning                // 05:00–11:59
	Afternoon              // 12:00–16:59
	Evening                // 17:00–21:59
	Night                  // 22:00–04:59
)

func (d DayPart) String() string {
	switch d {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	case Evening:
		return "evening"
	case Night:
		return "night"
	default:
		return "unknown"
	}
}

// DayParts lists the four real buckets in display order.
var DayParts = []DayPart{Morning, Afternoon, Evening, Night}

// BucketTimeOfDay maps an "HH:MM" local time string to its day part.
// Malformed or empty input yields DayPartUnknown.
func BucketTimeOfDay(hhmm string) DayPart {
	h, ok := parseHour(hhmm)
	if !ok {
		return DayPartUnknown
	}
	switch {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 22:
		return Evening
	default:
		return Night
	}
}

func parseHour(hhmm string) (int, bool) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// ScaleBand classifies a 1–10 scale value into low/mid/high.
// Values ≤4 are low, ≥7 are high, the rest mid. 0 (not recorded) is mid.
type ScaleBand int

const (
	BandMid ScaleBand = iota
	BandLow
	BandHigh
)

// BucketScale bands a 1–10 scale value.
func BucketScale(v int) ScaleBand {
	switch {
	case v >= 1 && v <= 4:
		return BandLow
	case v >= 7:
		return BandHigh
	default:
		return BandMid
	}
}

// Game duration buckets. Normal online games run about 12 minutes; extra
// time pushes past 15. The band in between belongs to neither bucket so the
// short/long comparison stays clean.
const (
	ShortGameMaxMinutes = 12.0
	LongGameMinMinutes  = 15.0
)

// IsShortGame reports whether the duration falls in the short bucket.
func IsShortGame(minutes float64) bool {
	return minutes > 0 && minutes < ShortGameMaxMinutes
}

// IsLongGame reports whether the duration falls in the long bucket.
func IsLongGame(minutes float64) bool {
	return minutes > LongGameMinMinutes
}

// Possession style buckets, in percent.
const (
	LowPossessionMaxPct  = 45.0
	HighPossessionMinPct = 55.0
)

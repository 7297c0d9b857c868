// Package insights evaluates an ordered battery of statistical rules over
// the full match corpus and returns a ranked, size-bounded list of
// natural-language insights. The engine is deterministic: a fixed input
// corpus always yields the identical ordered list.
package insights

import (
	"sort"

	"champstats/internal/config"
	"champstats/internal/model"
)

// Generate evaluates every rule against aggregates computed once from the
// historical runs plus the optional in-progress run, then ranks the fired
// insights by priority descending with confidence descending as tie-break
// and truncates to cfg.MaxInsights.
func Generate(historical []model.Run, active *model.Run, cfg config.Config) []model.Insight {
	agg := buildAggregates(historical, active, cfg)

	out := make([]model.Insight, 0, len(battery))
	for _, rule := range battery {
		if ins := evalRule(rule, agg, cfg); ins != nil {
			out = append(out, *ins)
		}
	}

	// Stable sort keeps battery order for equal (priority, confidence).
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Confidence > out[j].Confidence
	})

	max := cfg.MaxInsights
	if max <= 0 {
		max = config.Default().MaxInsights
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// evalRule runs one rule, treating a panic as "no insight" so a single buggy
// rule cannot suppress the whole set.
func evalRule(rule Rule, agg *Aggregates, cfg config.Config) (ins *model.Insight) {
	defer func() {
		if recover() != nil {
			ins = nil
		}
	}()
	return rule(agg, cfg)
}

// Package report renders the engine's value objects as terminal tables.
// It holds no logic of its own: numbers come in, tables go out.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"champstats/internal/analytics"
	"champstats/internal/chunks"
	"champstats/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintRunHeader prints a one-line summary header for a run.
func PrintRunHeader(w io.Writer, run *model.Run, cps float64, hasCPS bool) {
	status := "in progress"
	if run.IsCompleted {
		status = "completed"
	}
	cpsStr := "—"
	if hasCPS {
		cpsStr = fmt.Sprintf("%.1f", cps)
	}
	fmt.Fprintf(w, "\nRun: %s  |  Started: %s  |  Status: %s  |  Record: %d-%d  |  CPS: %s\n\n",
		run.DisplayName, run.StartDate, status, run.Wins(), run.Losses(), cpsStr)
}

// PrintRunList prints run summaries, oldest first.
func PrintRunList(w io.Writer, summaries []model.RunSummary) {
	table := newTable(w)
	table.Header("ID", "NAME", "START", "STATUS", "GP", "W", "L", "GF", "GA", "GD", "CPS")
	for _, s := range summaries {
		status := "open"
		if s.IsCompleted {
			status = "done"
		}
		cps := "—"
		if s.HasCachedCPS {
			cps = fmt.Sprintf("%.1f", s.CachedCPS)
		}
		table.Append(
			shortID(s.RunID),
			s.DisplayName,
			s.StartDate,
			status,
			strconv.Itoa(s.GameCount),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.GoalsFor),
			strconv.Itoa(s.GoalsAgainst),
			fmt.Sprintf("%+d", s.GoalsFor-s.GoalsAgainst),
			cps,
		)
	}
	table.Render()
}

// PrintMatchTable prints a run's matches in sequence order.
func PrintMatchTable(w io.Writer, matches []model.MatchRecord) {
	table := newTable(w)
	table.Header("#", "R", "SCORE", "OPP", "CTX", "DUR", "TIME", "TAGS")
	for i := range matches {
		m := &matches[i]
		opp := "—"
		if m.OpponentSkill > 0 {
			opp = strconv.Itoa(m.OpponentSkill)
		}
		tod := m.TimeOfDay
		if tod == "" {
			tod = "—"
		}
		tags := "—"
		if len(m.Tags) > 0 {
			tags = joinMax(m.Tags, 3)
		}
		table.Append(
			strconv.Itoa(m.SequenceNumber),
			m.Result.String(),
			fmt.Sprintf("%d-%d", m.GoalsFor, m.GoalsAgainst),
			opp,
			m.Context.String(),
			fmt.Sprintf("%.0fm", m.DurationMinutes),
			tod,
			tags,
		)
	}
	table.Render()
}

// PrintChunkTable prints a run's early/mid/late window records.
func PrintChunkTable(w io.Writer, b chunks.Breakdown) {
	table := newTable(w)
	table.Header("WINDOW", "GP", "W", "L", "GF", "GA", "GD", "WIN%")
	for _, p := range chunks.Positions {
		c := b.At(p)
		if c.GameCount == 0 {
			table.Append(p.String(), "0", "—", "—", "—", "—", "—", "—")
			continue
		}
		table.Append(
			p.String(),
			strconv.Itoa(c.GameCount),
			strconv.Itoa(c.Wins),
			strconv.Itoa(c.Losses),
			strconv.Itoa(c.GoalsFor),
			strconv.Itoa(c.GoalsAgainst),
			fmt.Sprintf("%+d", c.GoalDiff()),
			fmt.Sprintf("%.0f%%", analytics.Pct(c.Wins, c.GameCount)),
		)
	}
	table.Render()
}

// PrintExtremesTable prints the all-time best and worst record per window.
func PrintExtremesTable(w io.Writer, ex chunks.Extremes) {
	table := newTable(w)
	table.Header("WINDOW", " ", "RECORD", "GF", "GA", "GD", "RUN")
	for _, p := range chunks.Positions {
		pe := ex.At(p)
		if !pe.Found {
			table.Append(p.String(), " ", "no data", "—", "—", "—", "—")
			continue
		}
		appendExtreme(table, p.String(), "best", pe.Best)
		appendExtreme(table, "", "worst", pe.Worst)
	}
	table.Render()
}

func appendExtreme(table *tablewriter.Table, window, kind string, e chunks.Extreme) {
	table.Append(
		window,
		kind,
		fmt.Sprintf("%d-%d", e.Chunk.Wins, e.Chunk.Losses),
		strconv.Itoa(e.Chunk.GoalsFor),
		strconv.Itoa(e.Chunk.GoalsAgainst),
		fmt.Sprintf("%+d", e.Chunk.GoalDiff()),
		e.Name,
	)
}

// PrintInsights prints the ranked insight list with supporting data points.
func PrintInsights(w io.Writer, list []model.Insight) {
	if len(list) == 0 {
		fmt.Fprintln(w, "Not enough data for insights yet. Log more matches.")
		return
	}
	for i, ins := range list {
		fmt.Fprintf(w, "%2d. [%s/%s] %s  (confidence %d%%)\n",
			i+1, ins.Priority, ins.Category, ins.Title, ins.Confidence)
		fmt.Fprintf(w, "    %s\n", ins.Description)
		if ins.Advice != "" {
			fmt.Fprintf(w, "    → %s\n", ins.Advice)
		}
		for _, dp := range ins.DataPoints {
			fmt.Fprintf(w, "      · %s\n", dp)
		}
		fmt.Fprintln(w)
	}
}

// PrintPlayerTable prints per-player aggregates, best rating first.
func PrintPlayerTable(w io.Writer, players []*model.PlayerAggregate) {
	table := newTable(w)
	table.Header("PLAYER", "POS", "APPS", "RATING", "G", "A", "G/GM", "YC", "RC")
	for _, p := range players {
		table.Append(
			p.Key.Name,
			p.Key.Position,
			strconv.Itoa(p.Appearances),
			fmt.Sprintf("%.1f", p.AvgRating()),
			strconv.Itoa(p.Goals),
			strconv.Itoa(p.Assists),
			fmt.Sprintf("%.2f", p.GoalsPerGame()),
			strconv.Itoa(p.YellowCards),
			strconv.Itoa(p.RedCards),
		)
	}
	table.Render()
}

// TrendRow is one run's point on the CPS trend.
type TrendRow struct {
	Name    string
	Start   string
	Games   int
	Wins    int
	Score   float64
	HasCPS  bool
	Reduced bool // true when the reduced (no player ratings) formula was used
}

// PrintTrendTable prints the chronological CPS trend across runs.
func PrintTrendTable(w io.Writer, rows []TrendRow) {
	table := newTable(w)
	table.Header("RUN", "START", "GP", "W", "L", "CPS", "FORMULA")
	for _, r := range rows {
		score := "—"
		formula := "—"
		if r.HasCPS {
			score = fmt.Sprintf("%.1f", r.Score)
			formula = "full"
			if r.Reduced {
				formula = "reduced"
			}
		}
		table.Append(
			r.Name,
			r.Start,
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Games-r.Wins),
			score,
			formula,
		)
	}
	table.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func joinMax(tags []string, n int) string {
	if len(tags) <= n {
		return strings.Join(tags, ",")
	}
	return strings.Join(tags[:n], ",") + ",…"
}

package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"champstats/internal/model"
)

// CreateRun inserts a new in-progress run and returns its generated id.
// At most one run may be in progress at a time.
func (db *DB) CreateRun(displayName, startDate string) (string, error) {
	active, err := db.GetActiveRun()
	if err != nil {
		return "", err
	}
	if active != nil {
		return "", fmt.Errorf("run %q is still in progress; close it first", active.DisplayName)
	}
	id := uuid.NewString()
	_, err = db.conn.Exec(`
		INSERT INTO runs(run_id, display_name, start_date) VALUES (?, ?, ?)`,
		id, displayName, startDate,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run completed and stamps its end date. A completed run
// is frozen; appends to it are rejected by AppendMatch.
func (db *DB) CompleteRun(runID, endDate string) error {
	res, err := db.conn.Exec(`
		UPDATE runs SET is_completed = 1, end_date = ? WHERE run_id = ? AND is_completed = 0`,
		endDate, runID,
	)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s not found or already completed", runID)
	}
	return nil
}

// SetCachedCPS writes the denormalized composite score for a run.
func (db *DB) SetCachedCPS(runID string, score float64) error {
	_, err := db.conn.Exec(`UPDATE runs SET cached_cps = ? WHERE run_id = ?`, score, runID)
	return err
}

// AppendMatch stores one normalized match in a run. An existing match at the
// same sequence number is replaced; historical order is never edited.
func (db *DB) AppendMatch(runID string, m model.MatchRecord) error {
	var completed int
	err := db.conn.QueryRow(`SELECT is_completed FROM runs WHERE run_id = ?`, runID).Scan(&completed)
	if err == sql.ErrNoRows {
		return fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return err
	}
	if completed != 0 {
		return fmt.Errorf("run %s is completed and frozen", runID)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var crossPlay interface{}
	if m.CrossPlay != nil {
		crossPlay = boolInt(*m.CrossPlay)
	}

	hasTeam := 0
	var poss, xgFor, xgAg, pass float64
	var foulsC, foulsS int
	if m.TeamStats != nil {
		hasTeam = 1
		poss = m.TeamStats.PossessionPct
		xgFor = m.TeamStats.ExpectedGoalsFor
		xgAg = m.TeamStats.ExpectedGoalsAgainst
		pass = m.TeamStats.PassAccuracyPct
		foulsC = m.TeamStats.FoulsCommitted
		foulsS = m.TeamStats.FoulsSuffered
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(
			run_id, seq, result, goals_for, goals_against,
			opponent_skill, stress_level, server_quality,
			duration_minutes, context, cross_play,
			has_team_stats, possession_pct, xg_for, xg_against, pass_accuracy,
			fouls_committed, fouls_suffered,
			tags, time_of_day
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runID, m.SequenceNumber, m.Result.String(), m.GoalsFor, m.GoalsAgainst,
		m.OpponentSkill, m.StressLevel, m.ServerQuality,
		m.DurationMinutes, m.Context.String(), crossPlay,
		hasTeam, poss, xgFor, xgAg, pass,
		foulsC, foulsS,
		strings.Join(m.Tags, ","), m.TimeOfDay,
	)
	if err != nil {
		return fmt.Errorf("insert match %d: %w", m.SequenceNumber, err)
	}

	// Replace-at-seq also replaces the player rows for that match.
	if _, err := tx.Exec(`DELETE FROM player_stats WHERE run_id = ? AND seq = ?`,
		runID, m.SequenceNumber); err != nil {
		return fmt.Errorf("clear player stats: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO player_stats(
			run_id, seq, ord, name, position, rating,
			goals, assists, minutes_played, yellow_cards, red_cards
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, p := range m.PlayerStats {
		if _, err := stmt.Exec(
			runID, m.SequenceNumber, i, p.Name, p.Position, p.Rating,
			p.Goals, p.Assists, p.MinutesPlayed, p.YellowCards, p.RedCards,
		); err != nil {
			return fmt.Errorf("insert player stats for %q: %w", p.Name, err)
		}
	}

	return tx.Commit()
}

// GetActiveRun returns the in-progress run with its matches, or nil when
// every stored run is completed.
func (db *DB) GetActiveRun() (*model.Run, error) {
	row := db.conn.QueryRow(`
		SELECT run_id FROM runs WHERE is_completed = 0 ORDER BY start_date DESC, run_id LIMIT 1`)
	var id string
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return db.GetRun(id)
}

// GetRun loads one run with all its matches and player rows.
func (db *DB) GetRun(runID string) (*model.Run, error) {
	row := db.conn.QueryRow(`
		SELECT run_id, display_name, start_date, end_date, is_completed, cached_cps
		FROM runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := db.loadMatches(run); err != nil {
		return nil, err
	}
	return run, nil
}

// GetRunByPrefix looks a run up by id prefix or exact display name.
func (db *DB) GetRunByPrefix(prefix string) (*model.Run, error) {
	row := db.conn.QueryRow(`
		SELECT run_id, display_name, start_date, end_date, is_completed, cached_cps
		FROM runs WHERE run_id LIKE ? OR display_name = ?
		ORDER BY start_date LIMIT 1`, prefix+"%", prefix)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := db.loadMatches(run); err != nil {
		return nil, err
	}
	return run, nil
}

// GetCompletedRuns loads every completed run, oldest first, with matches.
func (db *DB) GetCompletedRuns() ([]model.Run, error) {
	return db.getRuns(`WHERE is_completed = 1`)
}

// GetAllRuns loads every run, oldest first, with matches.
func (db *DB) GetAllRuns() ([]model.Run, error) {
	return db.getRuns(``)
}

func (db *DB) getRuns(where string) ([]model.Run, error) {
	rows, err := db.conn.Query(`
		SELECT run_id, display_name, start_date, end_date, is_completed, cached_cps
		FROM runs ` + where + ` ORDER BY start_date, run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range runs {
		if err := db.loadMatches(&runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// ListRuns returns lightweight summaries for the list command, oldest first.
func (db *DB) ListRuns() ([]model.RunSummary, error) {
	rows, err := db.conn.Query(`
		SELECT r.run_id, r.display_name, r.start_date, r.end_date, r.is_completed, r.cached_cps,
		       COUNT(m.seq),
		       COALESCE(SUM(CASE WHEN m.result = 'W' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(m.goals_for), 0),
		       COALESCE(SUM(m.goals_against), 0)
		FROM runs r
		LEFT JOIN matches m ON m.run_id = r.run_id
		GROUP BY r.run_id
		ORDER BY r.start_date, r.run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RunSummary
	for rows.Next() {
		var s model.RunSummary
		var completed int
		var cps sql.NullFloat64
		if err := rows.Scan(
			&s.RunID, &s.DisplayName, &s.StartDate, &s.EndDate, &completed, &cps,
			&s.GameCount, &s.Wins, &s.GoalsFor, &s.GoalsAgainst,
		); err != nil {
			return nil, err
		}
		s.IsCompleted = completed != 0
		s.Losses = s.GameCount - s.Wins
		if cps.Valid {
			s.CachedCPS = cps.Float64
			s.HasCachedCPS = true
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Overview aggregates high-level totals for the summary command.
type Overview struct {
	TotalRuns     int
	CompletedRuns int
	TotalMatches  int
	Wins          int
	GoalsFor      int
	GoalsAgainst  int
	FirstStart    string
	LastStart     string
}

// GetOverview returns database-wide totals.
func (db *DB) GetOverview() (Overview, error) {
	var ov Overview
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(is_completed), 0),
		       COALESCE(MIN(start_date), ''),
		       COALESCE(MAX(start_date), '')
		FROM runs`).Scan(&ov.TotalRuns, &ov.CompletedRuns, &ov.FirstStart, &ov.LastStart)
	if err != nil {
		return ov, err
	}
	err = db.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN result = 'W' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(goals_for), 0),
		       COALESCE(SUM(goals_against), 0)
		FROM matches`).Scan(&ov.TotalMatches, &ov.Wins, &ov.GoalsFor, &ov.GoalsAgainst)
	return ov, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*model.Run, error) {
	var run model.Run
	var completed int
	var cps sql.NullFloat64
	err := row.Scan(&run.RunID, &run.DisplayName, &run.StartDate, &run.EndDate, &completed, &cps)
	if err != nil {
		return nil, err
	}
	run.IsCompleted = completed != 0
	if cps.Valid {
		run.CachedCPS = cps.Float64
		run.CachedCPSValid = true
	}
	return &run, nil
}

func (db *DB) loadMatches(run *model.Run) error {
	rows, err := db.conn.Query(`
		SELECT seq, result, goals_for, goals_against,
		       opponent_skill, stress_level, server_quality,
		       duration_minutes, context, cross_play,
		       has_team_stats, possession_pct, xg_for, xg_against, pass_accuracy,
		       fouls_committed, fouls_suffered,
		       tags, time_of_day
		FROM matches WHERE run_id = ? ORDER BY seq`, run.RunID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m model.MatchRecord
		var result, context, tags string
		var crossPlay sql.NullInt64
		var hasTeam int
		var ts model.TeamStats
		if err := rows.Scan(
			&m.SequenceNumber, &result, &m.GoalsFor, &m.GoalsAgainst,
			&m.OpponentSkill, &m.StressLevel, &m.ServerQuality,
			&m.DurationMinutes, &context, &crossPlay,
			&hasTeam, &ts.PossessionPct, &ts.ExpectedGoalsFor, &ts.ExpectedGoalsAgainst, &ts.PassAccuracyPct,
			&ts.FoulsCommitted, &ts.FoulsSuffered,
			&tags, &m.TimeOfDay,
		); err != nil {
			return err
		}
		if result == "W" {
			m.Result = model.Win
		}
		m.Context = model.ParseMatchContext(context)
		if crossPlay.Valid {
			v := crossPlay.Int64 != 0
			m.CrossPlay = &v
		}
		if hasTeam != 0 {
			tsCopy := ts
			m.TeamStats = &tsCopy
		}
		if tags != "" {
			m.Tags = strings.Split(tags, ",")
		}
		run.Matches = append(run.Matches, m)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return db.loadPlayers(run)
}

func (db *DB) loadPlayers(run *model.Run) error {
	rows, err := db.conn.Query(`
		SELECT seq, name, position, rating, goals, assists,
		       minutes_played, yellow_cards, red_cards
		FROM player_stats WHERE run_id = ? ORDER BY seq, ord`, run.RunID)
	if err != nil {
		return err
	}
	defer rows.Close()

	bySeq := make(map[int]*model.MatchRecord, len(run.Matches))
	for i := range run.Matches {
		bySeq[run.Matches[i].SequenceNumber] = &run.Matches[i]
	}
	for rows.Next() {
		var seq int
		var p model.PlayerPerformance
		if err := rows.Scan(
			&seq, &p.Name, &p.Position, &p.Rating, &p.Goals, &p.Assists,
			&p.MinutesPlayed, &p.YellowCards, &p.RedCards,
		); err != nil {
			return err
		}
		if m := bySeq[seq]; m != nil {
			m.PlayerStats = append(m.PlayerStats, p)
		}
	}
	return rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"champstats/internal/cps"
	"champstats/internal/model"
	"champstats/internal/normalize"
	"champstats/internal/storage"
)

var (
	addSeq       int
	addSkill     int
	addStress    int
	addServer    int
	addDuration  float64
	addContext   string
	addCrossPlay string
	addTime      string
	addTags      []string
	addPlayers   []string
	addPossess   float64
	addXGFor     float64
	addXGAgainst float64
	addPassAcc   float64
)

var addCmd = &cobra.Command{
	Use:   "add <goals-for> <goals-against>",
	Short: "Log one match in the current run",
	Long: `Append a match result to the in-progress run. The result (win/loss) is
derived from the score line. Player lines use the form
"name:position:rating[:goals[:assists[:minutes[:yc[:rc]]]]]", e.g.
--player "Mbappé:ST:8.4:2:0:90".`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().IntVar(&addSeq, "seq", 0, "sequence number to replace (default: append)")
	addCmd.Flags().IntVar(&addSkill, "opponent-skill", 0, "opponent skill 1-10")
	addCmd.Flags().IntVar(&addStress, "stress", 0, "stress level 1-10")
	addCmd.Flags().IntVar(&addServer, "server", 0, "server quality 1-10")
	addCmd.Flags().Float64Var(&addDuration, "duration", 12, "match duration in minutes")
	addCmd.Flags().StringVar(&addContext, "context", "normal",
		"match context (normal, rage-quit, extra-time, penalties, disconnect, hacker, free-win)")
	addCmd.Flags().StringVar(&addCrossPlay, "cross-play", "", "cross-play enabled (on/off)")
	addCmd.Flags().StringVar(&addTime, "time", "", "local kickoff time HH:MM (default now)")
	addCmd.Flags().StringSliceVar(&addTags, "tag", nil, "free-text tag (repeatable)")
	addCmd.Flags().StringArrayVar(&addPlayers, "player", nil, "player performance line (repeatable)")
	addCmd.Flags().Float64Var(&addPossess, "possession", 0, "possession percent")
	addCmd.Flags().Float64Var(&addXGFor, "xg-for", 0, "expected goals for")
	addCmd.Flags().Float64Var(&addXGAgainst, "xg-against", 0, "expected goals against")
	addCmd.Flags().Float64Var(&addPassAcc, "pass-accuracy", 0, "pass accuracy percent")
}

func runAdd(cmd *cobra.Command, args []string) error {
	goalsFor, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid goals-for %q: %w", args[0], err)
	}
	goalsAgainst, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid goals-against %q: %w", args[1], err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	run, err := db.GetActiveRun()
	if err != nil {
		return fmt.Errorf("get active run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no run in progress; start one with 'champstats start <name>'")
	}

	raw := normalize.RawRecord{
		SequenceNumber:  addSeq,
		GoalsFor:        goalsFor,
		GoalsAgainst:    goalsAgainst,
		OpponentSkill:   addSkill,
		StressLevel:     addStress,
		ServerQuality:   addServer,
		DurationMinutes: addDuration,
		Context:         addContext,
		Tags:            addTags,
		TimeOfDay:       addTime,
	}
	if raw.SequenceNumber == 0 {
		raw.SequenceNumber = len(run.Matches) + 1
	}
	if raw.TimeOfDay == "" {
		raw.TimeOfDay = time.Now().Format("15:04")
	}
	switch addCrossPlay {
	case "on":
		v := true
		raw.CrossPlay = &v
	case "off":
		v := false
		raw.CrossPlay = &v
	case "":
	default:
		return fmt.Errorf("invalid --cross-play %q: want on or off", addCrossPlay)
	}
	if addPossess > 0 || addXGFor > 0 || addXGAgainst > 0 || addPassAcc > 0 {
		raw.TeamStats = &model.TeamStats{
			PossessionPct:        addPossess,
			ExpectedGoalsFor:     addXGFor,
			ExpectedGoalsAgainst: addXGAgainst,
			PassAccuracyPct:      addPassAcc,
		}
	}
	for _, line := range addPlayers {
		p, err := parsePlayerLine(line)
		if err != nil {
			return err
		}
		raw.PlayerStats = append(raw.PlayerStats, p)
	}

	rec, err := normalize.Match(raw)
	if err != nil {
		return fmt.Errorf("normalize match: %w", err)
	}

	if err := db.AppendMatch(run.RunID, rec); err != nil {
		return fmt.Errorf("append match: %w", err)
	}
	log.Info().
		Str("run_id", run.RunID).
		Int("seq", rec.SequenceNumber).
		Str("score", fmt.Sprintf("%d-%d", rec.GoalsFor, rec.GoalsAgainst)).
		Msg("match logged")

	// Re-load to pick up the append, then auto-complete at the run cap.
	run, err = db.GetRun(run.RunID)
	if err != nil {
		return fmt.Errorf("reload run: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Match %d logged: %s %d-%d (%d-%d so far)\n",
		rec.SequenceNumber, rec.Result, rec.GoalsFor, rec.GoalsAgainst, run.Wins(), run.Losses())

	if len(run.Matches) >= engineCfg.RunCap && !run.IsCompleted {
		if err := completeRun(db, run); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Run %q is complete at %d games.\n", run.DisplayName, len(run.Matches))
	}
	return nil
}

func completeRun(db *storage.DB, run *model.Run) error {
	if err := db.CompleteRun(run.RunID, time.Now().Format("2006-01-02")); err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	return cacheScore(db, run)
}

// cacheScore recomputes the composite score and stores the denormalized copy.
func cacheScore(db *storage.DB, run *model.Run) error {
	score, ok := cps.Compute(run.Matches)
	if !ok {
		return nil
	}
	if err := db.SetCachedCPS(run.RunID, score); err != nil {
		return fmt.Errorf("cache score: %w", err)
	}
	log.Info().Str("run_id", run.RunID).Float64("cps", score).Msg("score cached")
	return nil
}

// parsePlayerLine parses "name:position:rating[:goals[:assists[:minutes[:yc[:rc]]]]]".
func parsePlayerLine(line string) (model.PlayerPerformance, error) {
	var p model.PlayerPerformance
	parts := strings.Split(line, ":")
	if len(parts) < 3 {
		return p, fmt.Errorf("invalid --player %q: want name:position:rating[...]", line)
	}
	p.Name = parts[0]
	p.Position = parts[1]
	rating, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return p, fmt.Errorf("invalid rating in --player %q: %w", line, err)
	}
	p.Rating = rating
	ints := []*int{&p.Goals, &p.Assists, &p.MinutesPlayed, &p.YellowCards, &p.RedCards}
	for i, dst := range ints {
		if len(parts) <= 3+i {
			break
		}
		v, err := strconv.Atoi(parts[3+i])
		if err != nil {
			return p, fmt.Errorf("invalid field %d in --player %q: %w", 3+i, line, err)
		}
		*dst = v
	}
	if p.MinutesPlayed == 0 {
		p.MinutesPlayed = 90
	}
	return p, nil
}

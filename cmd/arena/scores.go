package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

const (
	historyLimit = 10
	recentLimit  = 5
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best scores",
	Long: `Display the best score of every mode with the latest rounds, or the
best score and the top 10 rounds of a single mode.

--clear deletes the round history of a mode. Best scores are kept.

Examples:
  arena scores
  arena scores ai_battle
  arena scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the round history of the given mode")
}

func runScores(_ *cobra.Command, args []string) error {
	scores := storage.NewHighScores(flagScoresPath, logger.WithPrefix("scores"))

	if len(args) == 0 {
		if flagClear {
			return errors.New("--clear needs a mode")
		}
		return printOverview(scores)
	}

	mode := args[0]
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q, run 'arena list' to see available modes", mode)
	}
	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		logger.Info("history cleared", "mode", mode)
		fmt.Printf("Cleared round history for %s.\n", game.Title())
		return nil
	}

	runs, err := store.TopScores(mode, historyLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()
	fmt.Printf("Best: %d\n", scores.Best(mode))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arena play %s' to set the first score!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-9s  %s\n", "Rank", "Score", "Level", "AI", "Ended by", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-9s  %s\n", "----", "-----", "-----", "--", "--------", "----")
	for i, r := range runs {
		ai := "-"
		if mode == "ai_battle" {
			ai = fmt.Sprint(r.AIScore)
		}
		reason := r.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-8s  %-9s  %s\n",
			i+1, r.Score, r.Level, ai, reason, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(mode); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Rounds: %d  Avg: %.0f  Top level: %d\n", stats.GamesCount, stats.AvgScore, stats.BestLevel)
	}
	return nil
}

// printOverview lists every mode's best score and the latest rounds.
// The history database is optional here.
func printOverview(scores *storage.HighScores) error {
	var stats map[string]*storage.GameStats
	var recent []storage.Run

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("score history unavailable", "path", flagDBPath, "err", err)
	} else {
		defer store.Close()
		if stats, err = store.GetAllGamesStats(); err != nil {
			return err
		}
		if recent, err = store.RecentRuns(recentLimit); err != nil {
			return err
		}
	}

	fmt.Println("Best Scores")
	fmt.Println()

	bests := scores.All()
	fmt.Printf("  %-20s  %-6s  %s\n", "Mode", "Best", "Rounds")
	fmt.Printf("  %-20s  %-6s  %s\n", "----", "----", "------")
	for _, info := range registry.List() {
		rounds := 0
		if st := stats[info.ID]; st != nil {
			rounds = st.GamesCount
		}
		fmt.Printf("  %-20s  %-6d  %d\n", info.Title, bests[info.ID], rounds)
	}

	if len(recent) > 0 {
		fmt.Println()
		fmt.Println("Latest rounds")
		fmt.Println()
		for _, r := range recent {
			fmt.Printf("  %s  %-10s  %6d  %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, r.Score, r.Reason)
		}
	}

	fmt.Println()
	fmt.Println("Run 'arena scores <mode>' for round history.")
	return nil
}

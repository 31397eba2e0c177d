package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ulo-snake/internal/games/snake"
	"github.com/vovakirdan/ulo-snake/internal/ledger"
	"github.com/vovakirdan/ulo-snake/internal/platform/tui"
)

var (
	flagScoresLevel  int
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show a level's leaderboard",
	Long: `Display the top scores (or the most recent ones) for a level.

Examples:
  ulosnake scores
  ulosnake scores --level 3 --limit 25
  ulosnake scores --level 2 --recent
  ulosnake scores --tui`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLevel, "level", 1, "Level to show (1-5)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", ledger.DefaultLimit, "Number of entries (10, 25, 50 or 100 are typical)")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent entries instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive leaderboard")
}

func runScores(cmd *cobra.Command, _ []string) error {
	if !snake.ValidLevel(flagScoresLevel) {
		return fmt.Errorf("level must be between %d and %d, got %d", snake.MinLevel, snake.MaxLevel, flagScoresLevel)
	}
	if flagScoresLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", flagScoresLimit)
	}

	rt, err := openRuntime(flagScoresTUI)
	if err != nil {
		return err
	}
	defer rt.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(rt.store, flagScoresLevel, width, height)
	}

	ctx := cmd.Context()

	var entries []ledger.Entry
	view := "Top"
	if flagScoresRecent {
		view = "Recent"
		entries, err = rt.store.RecentN(ctx, flagScoresLevel, flagScoresLimit)
	} else {
		entries, err = rt.store.TopN(ctx, flagScoresLevel, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	info := snake.GetLevel(flagScoresLevel)
	fmt.Printf("%s %d - Level %d: %s\n", view, flagScoresLimit, info.ID, info.Name)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'ulosnake play --level %d' to set the first high score!\n", info.ID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-28s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-28s  %-8s  %s\n", "----", "----", "-----", "----")

	for i, e := range entries {
		fmt.Printf("  %-4d  %-28s  %-8d  %s\n", i+1, e.DisplayName, e.Score, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

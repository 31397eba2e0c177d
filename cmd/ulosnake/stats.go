package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ulo-snake/internal/games/snake"
	"github.com/vovakirdan/ulo-snake/internal/platform/tui"
)

var (
	flagStatsPlayer string
	flagStatsLevels bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a player's statistics and token balance",
	Long: `Display games played, last and best score, and the ULO balance for a
player. With --levels, show per-level totals and the token supply instead.

Examples:
  ulosnake stats
  ulosnake stats --player alice
  ulosnake stats --levels`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagStatsPlayer, "player", "", "Player identity (default: $USER)")
	statsCmd.Flags().BoolVar(&flagStatsLevels, "levels", false, "Show per-level totals and token supply")
}

func runStats(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()

	if flagStatsLevels {
		return printLevelStats(ctx, rt)
	}

	player := flagStatsPlayer
	if player == "" {
		player = defaultPlayer()
	}
	st, err := rt.store.PlayerStats(ctx, player)
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	balance, err := rt.store.BalanceOf(ctx, player)
	if err != nil {
		return fmt.Errorf("error retrieving balance: %w", err)
	}

	fmt.Println(tui.RenderStats(st, balance, rt.svc.Token))
	return nil
}

func printLevelStats(ctx context.Context, rt *runtime) error {
	stats, err := rt.store.LevelStats(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving level stats: %w", err)
	}
	supply, err := rt.store.TotalSupply(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving token supply: %w", err)
	}

	levels := make([]int, 0, len(stats))
	for lv := range stats {
		levels = append(levels, lv)
	}
	sort.Ints(levels)

	fmt.Printf("  %-8s  %-7s  %-7s  %-6s  %-8s  %s\n", "Level", "Games", "Players", "Best", "Average", "Last played")
	fmt.Printf("  %-8s  %-7s  %-7s  %-6s  %-8s  %s\n", "-----", "-----", "-------", "----", "-------", "-----------")
	for _, lv := range levels {
		s := stats[lv]
		fmt.Printf("  %-8s  %-7d  %-7d  %-6d  %-8.1f  %s\n",
			snake.GetLevel(lv).Name, s.Entries, s.Players, s.HighScore, s.AvgScore,
			s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	if len(levels) == 0 {
		fmt.Println("  No games recorded yet.")
	}

	fmt.Println()
	fmt.Printf("Total supply: %s\n", rt.svc.Token.Format(supply))
	return nil
}

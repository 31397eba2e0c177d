package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ulo-snake/internal/games/snake"
	"github.com/vovakirdan/ulo-snake/internal/platform/tui"
)

var (
	flagPlayer string
	flagName   string
	flagLevel  int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play ULO Snake in this terminal",
	Long: `Open the level picker and play in this terminal.

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Space           - Pause
  Esc               - Abandon (while paused)
  R                 - Play again (after game over)
  Q/Ctrl+C          - Quit

The player identity defaults to $USER. Logs are written to the log file
from the config (default: ~/.ulosnake/ulosnake.log).

Examples:
  ulosnake play
  ulosnake play --player alice --name "Al"
  ulosnake play --level 4 --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player identity (default: $USER)")
	playCmd.Flags().StringVar(&flagName, "name", "", "Display name shown on the leaderboard")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start directly at this level (1-5), skipping the menu")
}

// defaultPlayer returns the local user name.
func defaultPlayer() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "player"
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if flagLevel != 0 && !snake.ValidLevel(flagLevel) {
		return fmt.Errorf("level must be between %d and %d, got %d", snake.MinLevel, snake.MaxLevel, flagLevel)
	}
	player := flagPlayer
	if player == "" {
		player = defaultPlayer()
	}

	// Get terminal size early for the first frame
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt, err := openRuntime(true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()

	if flagLevel != 0 {
		err = tui.RunGame(ctx, rt.svc, player, flagName, flagLevel, width, height)
	} else {
		err = tui.Run(ctx, rt.svc, player, width, height)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

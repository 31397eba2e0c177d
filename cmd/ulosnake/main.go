// ulosnake is a terminal Snake game with per-level leaderboards and ULO
// token rewards.
//
// Usage:
//
//	ulosnake play            - Play locally in this terminal
//	ulosnake serve           - Start SSH server for remote play
//	ulosnake scores          - Show a level's leaderboard
//	ulosnake stats           - Show a player's statistics and balance
//	ulosnake levels          - List the difficulty levels
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.ulosnake/config.yaml)
//	--db <path>         - Ledger database path (overrides config)
//	--seed <value>      - RNG seed for reproducible food placement
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ulosnake",
	Short: "ULO Snake - Snake in your terminal, rewarded in ULO",
	Long: `ULO Snake is a terminal Snake game. Every finished game is recorded on a
per-level leaderboard and rewarded with ULO tokens, one token per point.

Available commands:
  play     - Play a game in this terminal
  serve    - Start SSH server for remote play
  scores   - View a level's leaderboard
  stats    - View a player's statistics
  levels   - List the difficulty levels

Examples:
  ulosnake play --level 3
  ulosnake serve --port 2222
  ulosnake scores --level 2 --recent
  ulosnake stats --player alice`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to ledger database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(levelsCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ulo-snake/internal/games/snake"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the difficulty levels",
	Long:  `Shows every level with its speed, score multiplier and tick period.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-2s  %-7s  %-10s  %-10s  %s\n", "ID", "Name", "Speed", "Multiplier", "Tick")
	fmt.Printf("  %-2s  %-7s  %-10s  %-10s  %s\n", "--", "----", "-----", "----------", "----")

	for _, lv := range snake.Levels {
		fmt.Printf("  %-2d  %-7s  %-10s  %-10s  %s\n",
			lv.ID, lv.Name, lv.Speed, fmt.Sprintf("%dx", lv.Multiplier), cfg.Timing.Period(lv.ID))
	}

	fmt.Println()
	fmt.Println("Run 'ulosnake play --level <id>' to start at a level.")
	return nil
}

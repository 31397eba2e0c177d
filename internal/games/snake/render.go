package snake

import (
	"fmt"

	"github.com/vovakirdan/ulo-snake/internal/core"
)

// BoardSize returns the screen footprint of a snapshot's board including its frame.
// Each cell is two characters wide so the board looks square in a terminal.
func BoardSize(width, height int) (w, h int) {
	return width*2 + 2, height + 2
}

// Render draws the board with its top-left frame corner at (originX, originY).
func (s Snapshot) Render(dst *core.Screen, originX, originY int) {
	bw, bh := BoardSize(s.Width, s.Height)
	dst.DrawBox(core.NewRect(originX, originY, bw, bh), core.ColorGray)

	cell := func(p core.Point, r rune, c core.Color) {
		x := originX + 1 + p.X*2
		y := originY + 1 + p.Y
		dst.SetColored(x, y, r, c)
		dst.SetColored(x+1, y, r, c)
	}

	if s.HasFood {
		cell(s.Food, '●', core.ColorBrightRed)
	}

	bodyColor := core.ColorGreen
	if s.State == StateCollided {
		bodyColor = core.ColorRed
	}
	for i := len(s.Body) - 1; i >= 0; i-- {
		if i == 0 {
			cell(s.Body[i], '█', core.ColorBrightGreen)
			continue
		}
		cell(s.Body[i], '▓', bodyColor)
	}
}

// HUD returns the one-line status shown above the board.
func (s Snapshot) HUD() string {
	info := GetLevel(s.Level)
	return fmt.Sprintf(" ULO Snake | Level %d (%s, %dx)  Score: %d  Length: %d",
		s.Level, info.Name, info.Multiplier, s.Score, len(s.Body))
}

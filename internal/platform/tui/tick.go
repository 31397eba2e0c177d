// Package tui provides the Bubble Tea front end: level picker, game view,
// leaderboard and stats screens, for local terminals and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ulo-snake/internal/session"
)

// frameMsg carries one runner frame. gen ties it to the game that produced it.
type frameMsg struct {
	gen   int
	frame session.Frame
}

// runnerDoneMsg is sent when a runner's Run returns.
type runnerDoneMsg struct {
	gen int
	err error
}

// clearStatusMsg hides a transient status line.
type clearStatusMsg struct {
	id int
}

// waitForFrame returns a command that waits for the next frame.
func waitForFrame(gen int, frames <-chan session.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return nil
		}
		return frameMsg{gen: gen, frame: f}
	}
}

// clearStatusCmd fires after d so a status line can expire.
func clearStatusCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

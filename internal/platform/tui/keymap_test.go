package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ulo-snake/internal/core"
	"github.com/vovakirdan/ulo-snake/internal/games/snake"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey("w"), core.ActionUp, false},
		{"k", runeKey("k"), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"j", runeKey("j"), core.ActionDown, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"h", runeKey("h"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"l", runeKey("l"), core.ActionRight, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"space", runeKey(" "), core.ActionPause, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.expected || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)",
					tt.msg.String(), action, quit, tt.expected, tt.quit)
			}
		})
	}
}

func TestHeadingFor(t *testing.T) {
	tests := []struct {
		action   core.Action
		expected snake.Direction
		ok       bool
	}{
		{core.ActionUp, snake.DirUp, true},
		{core.ActionDown, snake.DirDown, true},
		{core.ActionLeft, snake.DirLeft, true},
		{core.ActionRight, snake.DirRight, true},
		{core.ActionPause, 0, false},
		{core.ActionNone, 0, false},
	}

	for _, tt := range tests {
		d, ok := HeadingFor(tt.action)
		if ok != tt.ok || (ok && d != tt.expected) {
			t.Errorf("HeadingFor(%v) = (%v, %v), expected (%v, %v)", tt.action, d, ok, tt.expected, tt.ok)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ulo-snake/internal/games/snake"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceStats
	ChoiceQuit
)

// menuExtras follow the level rows.
var menuExtras = []struct {
	label  string
	choice MenuChoice
}{
	{"Leaderboard", ChoiceScores},
	{"My Stats", ChoiceStats},
	{"Quit", ChoiceQuit},
}

const (
	nameCharLimit = 24
	statusTTL     = 5 * time.Second
)

// MenuModel lets the player pick a level, set a display name and open the
// leaderboard or stats screens.
type MenuModel struct {
	player      string
	cursor      int
	nameInput   textinput.Model
	editingName bool
	width       int
	height      int
	keyMapper   *KeyMapper
	choice      MenuChoice
	status      string
	statusID    int
}

// NewMenuModel creates the menu for player.
func NewMenuModel(player string, width, height int) MenuModel {
	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = "optional display name"
	ti.CharLimit = nameCharLimit
	ti.Width = nameCharLimit

	return MenuModel{
		player:    player,
		nameInput: ti,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editingName {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	if m.editingName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m MenuModel) itemCount() int {
	return snake.LevelCount() + len(menuExtras)
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "n", "tab":
		m.editingName = true
		return m, m.nameInput.Focus()
	case "1", "2", "3", "4", "5":
		m.cursor = int(msg.String()[0] - '1')
		m.choice = ChoicePlay
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = ChoiceQuit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor < snake.LevelCount() {
			m.choice = ChoicePlay
		} else {
			m.choice = menuExtras[m.cursor-snake.LevelCount()].choice
		}
	}
	return m, nil
}

func (m MenuModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "tab":
		m.editingName = false
		m.nameInput.Blur()
		return m, nil
	case "ctrl+c":
		m.choice = ChoiceQuit
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("U L O   S N A K E", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Player: %s", m.player), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.nameInput.View(), m.width))
	b.WriteString("\n\n")

	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	for i, lv := range snake.Levels {
		line := fmt.Sprintf("  %d. %-7s %-10s %dx", lv.ID, lv.Name, lv.Speed, lv.Multiplier)
		if i == m.cursor {
			line = selected.Render("> " + line[2:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for i, extra := range menuExtras {
		line := "  " + extra.label
		if snake.LevelCount()+i == m.cursor {
			line = selected.Render("> " + extra.label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.cursor < snake.LevelCount() {
		b.WriteString(hintStyle.Render(centerText(snake.Levels[m.cursor].Info, m.width)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(errStyle.Render(centerText(m.status, m.width)))
		b.WriteString("\n")
	}

	hints := "Enter: Select  |  1-5: Quick start  |  N: Edit name  |  Q: Quit"
	if m.editingName {
		hints = "Enter/Esc: Done editing"
	}
	b.WriteString(hintStyle.Render(centerText(hints, m.width)))

	return b.String()
}

// Choice returns what the player picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Level returns the highlighted level (valid when Choice is ChoicePlay).
func (m MenuModel) Level() int {
	if m.cursor >= snake.LevelCount() {
		return snake.MinLevel
	}
	return snake.Levels[m.cursor].ID
}

// Name returns the display name typed by the player.
func (m MenuModel) Name() string {
	return strings.TrimSpace(m.nameInput.Value())
}

// Resume clears the last choice so the menu can be shown again.
// A non-empty status is shown under the level list until it expires.
func (m MenuModel) Resume(status string) (MenuModel, tea.Cmd) {
	m.choice = ChoiceNone
	m.status = status
	m.statusID++
	if status == "" {
		return m, nil
	}
	return m, clearStatusCmd(m.statusID, statusTTL)
}

// Status returns the status line, if any.
func (m MenuModel) Status() string {
	return m.status
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ulo-snake/internal/games/snake"
	"github.com/vovakirdan/ulo-snake/internal/ledger"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the level sidebar
	sidebarWidth       = 20
)

// ScoreView selects which ledger query the scoreboard shows.
type ScoreView int

const (
	ViewTop ScoreView = iota
	ViewRecent
)

func (v ScoreView) String() string {
	if v == ViewRecent {
		return "RECENT"
	}
	return "TOP"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextLevel  key.Binding
	PrevLevel  key.Binding
	ToggleView key.Binding
	Limit      key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.ToggleView, k.Limit, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.ToggleView, k.Limit, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right/tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left/S-tab", "prev level"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "top/recent"),
		),
		Limit: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "rows"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the per-level leaderboard.
type ScoreboardModel struct {
	ledger      ledger.Ledger
	level       int
	view        ScoreView
	limitIdx    int // Index into ledger.Limits
	entries     []ledger.Entry
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	standalone  bool // Back quits the program instead of returning to a parent
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard opened at level.
func NewScoreboardModel(l ledger.Ledger, level, width, height int) ScoreboardModel {
	if !snake.ValidLevel(level) {
		level = snake.MinLevel
	}

	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		ledger:      l,
		level:       level,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadScores()
	return m
}

// createTable creates a new table with columns sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: 24},
		{Title: "Level", Width: 8},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 6
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	// Give any spare or missing width to the name column.
	fixed := 6 + 8 + 8 + 14 + 8 // Other columns plus cell padding
	if nameWidth := tableWidth - fixed; nameWidth > 10 {
		columns[1].Width = min(nameWidth, 40)
	} else {
		columns[1].Width = 10
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Limit returns the current row bound.
func (m ScoreboardModel) Limit() int {
	return ledger.Limits[m.limitIdx]
}

// Level returns the level being shown.
func (m ScoreboardModel) Level() int {
	return m.level
}

// ScoreView returns which query is shown.
func (m ScoreboardModel) ScoreView() ScoreView {
	return m.view
}

// Entries returns the loaded rows.
func (m ScoreboardModel) Entries() []ledger.Entry {
	return m.entries
}

// loadScores queries the ledger for the current level, view and limit.
func (m *ScoreboardModel) loadScores() {
	m.entries = nil
	m.loadErr = nil
	if m.ledger == nil {
		m.updateTableRows()
		return
	}

	ctx := context.Background()
	var err error
	if m.view == ViewRecent {
		m.entries, err = m.ledger.RecentN(ctx, m.level, m.Limit())
	} else {
		m.entries, err = m.ledger.TopN(ctx, m.level, m.Limit())
	}
	if err != nil {
		m.entries = nil
		m.loadErr = err
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current entries.
func (m *ScoreboardModel) updateTableRows() {
	m.table.SetRows(EntryRows(m.entries))
	m.table.GotoTop()
}

// EntryRows formats entries as table rows: rank, name, level, score, date.
func EntryRows(entries []ledger.Entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.DisplayName,
			snake.GetLevel(e.Level).Name,
			fmt.Sprintf("%d", e.Score),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextLevel):
			m.level++
			if m.level > snake.MaxLevel {
				m.level = snake.MinLevel
			}
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			m.level--
			if m.level < snake.MinLevel {
				m.level = snake.MaxLevel
			}
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.ToggleView):
			if m.view == ViewTop {
				m.view = ViewRecent
			} else {
				m.view = ViewTop
			}
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Limit):
			m.limitIdx = (m.limitIdx + 1) % len(ledger.Limits)
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || (m.goingBack && m.standalone) {
		return ""
	}

	var b strings.Builder

	info := snake.GetLevel(m.level)
	title := fmt.Sprintf("%s %d - LEVEL %d: %s", m.view, m.Limit(), m.level, strings.ToUpper(info.Name))
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a level sidebar.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := panelStyle.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for _, lv := range snake.Levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if lv.ID == m.level {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(fmt.Sprintf("%s%d %s", cursor, lv.ID, lv.Name)))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", panelStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the scoreboard with level tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	names := snake.LevelNames()
	tabs := make([]string, 0, len(names))
	for i, name := range names {
		if snake.MinLevel+i == m.level {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, hintStyle.Render(" "+name+" "))
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", snake.GetLevel(m.level).Name)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or an empty/error message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return errStyle.Padding(2, 4).Render("Could not load scores:\n" + m.loadErr.Error())
	}
	if len(m.entries) == 0 {
		return emptyStyle.Render("No scores recorded for this level yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
func RunScoreboard(l ledger.Ledger, level, width, height int) error {
	model := NewScoreboardModel(l, level, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenScores
	screenStats
)

// AppModel manages the full session flow: menu -> game/scores/stats -> menu.
// It is the top-level model for both local and SSH sessions.
type AppModel struct {
	ctx    context.Context
	svc    *Services
	player string
	width  int
	height int

	screen   appScreen
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	stats    StatsModel
	single   bool // Started straight into a game; leaving it quits
	quitting bool
}

// NewAppModel creates the top-level model for player. ctx bounds every game
// started from it.
func NewAppModel(ctx context.Context, svc *Services, player string, width, height int) AppModel {
	return AppModel{
		ctx:    ctx,
		svc:    svc,
		player: player,
		width:  width,
		height: height,
		menu:   NewMenuModel(player, width, height),
	}
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenStats:
		return m.updateStats(msg)
	}
	return m.updateMenu(msg)
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		game, err := NewGameModel(m.ctx, m.svc, m.player, m.menu.Name(), m.menu.Level(), m.width, m.height)
		if err != nil {
			var expire tea.Cmd
			m.menu, expire = m.menu.Resume(err.Error())
			return m, expire
		}
		m.game = game
		m.screen = screenGame
		return m, m.game.Init()

	case ChoiceScores:
		m.scores = NewScoreboardModel(m.svc.Ledger, m.menu.Level(), m.width, m.height)
		m.screen = screenScores
		return m, m.scores.Init()

	case ChoiceStats:
		m.stats = NewStatsModel(m.svc, m.player, m.width, m.height)
		m.screen = screenStats
		return m, m.stats.Init()
	}

	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game.abandon()
		if m.single {
			m.quitting = true
			return m, tea.Quit
		}
		return m.backToMenu()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m AppModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.stats.Update(msg)
	if stats, ok := next.(StatsModel); ok {
		m.stats = stats
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.stats.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m AppModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu, _ = m.menu.Resume("")
	// The menu may have missed resizes while hidden.
	next, _ := m.menu.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}
	return m, nil
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenStats:
		return m.stats.View()
	}
	return m.menu.View()
}

// Run starts the interactive program in the local terminal.
func Run(ctx context.Context, svc *Services, player string, width, height int) error {
	p := tea.NewProgram(
		NewAppModel(ctx, svc, player, width, height),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// RunGame plays level directly, without the menu.
func RunGame(ctx context.Context, svc *Services, player, name string, level, width, height int) error {
	game, err := NewGameModel(ctx, svc, player, name, level, width, height)
	if err != nil {
		return err
	}
	m := NewAppModel(ctx, svc, player, width, height)
	m.game = game
	m.screen = screenGame
	m.single = true

	p := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ulo-snake/internal/core"
	"github.com/vovakirdan/ulo-snake/internal/games/snake"
	"github.com/vovakirdan/ulo-snake/internal/session"
)

type gamePhase int

const (
	phasePlaying gamePhase = iota
	phaseSubmitting
	phaseOver
)

// submitMsg carries the outcome of SubmitSession.
type submitMsg struct {
	gen int
	sub *session.Submission
	err error
}

// GameModel plays one level: it owns a session runner and submits the score
// when the snake collides.
type GameModel struct {
	svc    *Services
	player string
	name   string
	level  int

	parent  context.Context // Lifetime of the UI connection
	gen     int
	ctx     context.Context
	cancel  context.CancelFunc
	engine  *snake.Engine // Touched only after the runner's final frame
	runner  *session.Runner
	session session.Session
	snap    snake.Snapshot
	paused  bool
	phase   gamePhase

	result *session.Submission
	err    error

	keyMapper  *KeyMapper
	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewGameModel starts a session for player at level. The runner stops and an
// unsubmitted session is dropped when ctx ends.
func NewGameModel(ctx context.Context, svc *Services, player, name string, level, width, height int) (GameModel, error) {
	m := GameModel{
		parent:    ctx,
		svc:       svc,
		player:    player,
		name:      name,
		level:     level,
		keyMapper: NewKeyMapper(),
		width:     width,
		height:    height,
	}
	if err := m.start(); err != nil {
		return m, err
	}
	return m, nil
}

// start opens a session and a fresh runner for it.
func (m *GameModel) start() error {
	h, err := m.svc.Controller.StartSession(m.parent, m.player, m.level)
	if err != nil {
		return err
	}

	if m.cancel != nil {
		m.cancel()
	}
	m.gen++
	m.ctx, m.cancel = context.WithCancel(m.parent)
	context.AfterFunc(m.ctx, m.releaser(h.Session))
	m.session = h.Session
	m.engine = h.Engine
	m.snap = h.Engine.Snapshot()
	m.runner = session.NewRunner(h.Engine, m.svc.runnerConfig(m.level))
	m.paused = false
	m.phase = phasePlaying
	m.result = nil
	m.err = nil
	return nil
}

// Init starts the runner loop and the frame pump.
func (m GameModel) Init() tea.Cmd {
	return m.runCmds()
}

func (m GameModel) runCmds() tea.Cmd {
	gen, runner, ctx := m.gen, m.runner, m.ctx
	run := func() tea.Msg {
		return runnerDoneMsg{gen: gen, err: runner.Run(ctx)}
	}
	return tea.Batch(run, waitForFrame(gen, runner.Frames()))
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.snap = msg.frame.Snapshot
		if msg.frame.Final {
			m.svc.logger().Debug("snake collided", "player", m.player, "session", m.session.ID,
				"state", m.engine.DebugState())
			m.phase = phaseSubmitting
			return m, m.submitCmd(m.snap.Score)
		}
		return m, waitForFrame(m.gen, m.runner.Frames())

	case runnerDoneMsg:
		if msg.gen == m.gen && msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		return m, nil

	case submitMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.phase = phaseOver
		m.result = msg.sub
		m.err = msg.err
		m.engine.Acknowledge()
		return m, nil
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case phasePlaying:
		// Input never waits on the runner; a turn into a full mailbox is dropped.
		if d, ok := HeadingFor(action); ok {
			m.runner.TryTurn(d)
			return m, nil
		}
		switch action {
		case core.ActionPause:
			if m.runner.TryTogglePause() {
				m.paused = !m.paused
			}
		case core.ActionBack:
			if m.paused {
				m.abandon()
				m.backToMenu = true
			}
		}

	case phaseOver:
		switch action {
		case core.ActionRestart:
			if err := m.start(); err != nil {
				m.err = err
				return m, nil
			}
			return m, m.runCmds()
		case core.ActionBack, core.ActionConfirm:
			m.backToMenu = true
		}
	}

	return m, nil
}

// abandon stops the runner and drops the session without a score.
func (m *GameModel) abandon() {
	if m.cancel != nil {
		m.cancel()
	}
	if m.phase != phasePlaying {
		return
	}
	err := m.svc.Controller.ResetSession(context.Background(), m.player)
	if err != nil && !errors.Is(err, session.ErrNoActiveSession) {
		m.svc.logger().Warn("failed to reset session", "player", m.player, "err", err)
	}
	m.phase = phaseOver
}

// releaser drops s if it is still open once its runner context ends, so a
// dropped connection does not leave the player locked out until the timeout.
func (m *GameModel) releaser(s session.Session) func() {
	ctl, logger := m.svc.Controller, m.svc.logger()
	return func() {
		active, ok := ctl.Active(s.Player)
		if !ok || active.ID != s.ID {
			return
		}
		if err := ctl.ResetSession(context.Background(), s.Player); err == nil {
			logger.Info("released abandoned session", "player", s.Player, "session", s.ID)
		}
	}
}

func (m GameModel) submitCmd(score int) tea.Cmd {
	gen, ctl := m.gen, m.svc.Controller
	player, name, level := m.player, m.name, m.level
	return func() tea.Msg {
		sub, err := ctl.SubmitSession(context.Background(), player, name, score, level)
		return submitMsg{gen: gen, sub: sub, err: err}
	}
}

// View renders the board, HUD and status line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	bw, bh := snake.BoardSize(m.snap.Width, m.snap.Height)
	screen := core.NewScreen(bw, bh)
	m.snap.Render(screen, 0, 0)

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(m.snap.HUD()),
		RenderScreen(screen),
		m.statusLine(),
		hintStyle.Render(m.hints()),
	)
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m GameModel) statusLine() string {
	switch m.phase {
	case phaseSubmitting:
		return hintStyle.Render("Game over. Submitting score...")
	case phaseOver:
		return m.outcome()
	}
	if m.err != nil {
		return errStyle.Render(m.err.Error())
	}
	if m.paused {
		return titleStyle.Render("PAUSED")
	}
	return ""
}

func (m GameModel) outcome() string {
	tok := m.svc.Token
	var mintErr *session.MintError
	switch {
	case m.err == nil && m.result != nil:
		return okStyle.Render(fmt.Sprintf("Game over! Score %d recorded as #%d. +%s",
			m.result.Entry.Score, m.result.Entry.ID, tok.Format(tok.BaseUnits(m.result.Reward))))
	case errors.As(m.err, &mintErr):
		return errStyle.Render(fmt.Sprintf("Score %d recorded, but the %s reward could not be minted: %v",
			mintErr.Entry.Score, tok.Symbol, mintErr.Err))
	case errors.Is(m.err, session.ErrSessionTimedOut):
		return errStyle.Render("Session timed out. The score was not recorded.")
	case m.err != nil:
		return errStyle.Render("Could not submit score: " + m.err.Error())
	}
	return ""
}

func (m GameModel) hints() string {
	var parts []string
	switch m.phase {
	case phasePlaying:
		parts = []string{"arrows/wasd/hjkl: steer", "p: pause"}
		if m.paused {
			parts = append(parts, "esc: abandon")
		}
	case phaseOver:
		parts = []string{"r: play again", "enter/esc: menu"}
	}
	parts = append(parts, "q: quit")
	return strings.Join(parts, "  |  ")
}

// Snapshot returns the last frame shown.
func (m GameModel) Snapshot() snake.Snapshot {
	return m.snap
}

// Result returns the submission and its error once the game is over.
func (m GameModel) Result() (*session.Submission, error) {
	return m.result, m.err
}

// IsOver reports whether the score was submitted.
func (m GameModel) IsOver() bool {
	return m.phase == phaseOver
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ulo-snake/internal/ledger"
	"github.com/vovakirdan/ulo-snake/internal/token"
)

// RenderStats formats a player's history and token balance.
// A nil balance is shown as unavailable.
func RenderStats(st ledger.PlayerStats, balance *big.Int, tok token.Token) string {
	last := "never"
	if !st.LastPlayed.IsZero() {
		last = st.LastPlayed.Local().Format("Jan 02 2006 15:04")
	}
	earned := "n/a"
	if balance != nil {
		earned = tok.Format(balance)
	}

	rows := [][2]string{
		{"Player", st.Player},
		{"Games played", fmt.Sprintf("%d", st.GamesPlayed)},
		{"Scores recorded", fmt.Sprintf("%d", st.Submissions)},
		{"Last score", fmt.Sprintf("%d", st.LastScore)},
		{"Highest score", fmt.Sprintf("%d", st.HighestScore)},
		{"Last played", last},
		{"Tokens earned", earned},
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-16s %s", r[0]+":", r[1])
	}
	return b.String()
}

var errStatsUnavailable = errors.New("statistics are not available")

// StatsModel shows the player's statistics until they go back.
type StatsModel struct {
	body      string
	err       error
	width     int
	height    int
	goingBack bool
	quitting  bool
}

// NewStatsModel loads the statistics for player from svc.
func NewStatsModel(svc *Services, player string, width, height int) StatsModel {
	m := StatsModel{width: width, height: height}
	m.body, m.err = loadStats(context.Background(), svc, player)
	return m
}

func loadStats(ctx context.Context, svc *Services, player string) (string, error) {
	if svc.Stats == nil {
		return "", errStatsUnavailable
	}
	st, err := svc.Stats.PlayerStats(ctx, player)
	if err != nil {
		return "", err
	}
	var balance *big.Int
	if svc.Balances != nil {
		balance, err = svc.Balances.BalanceOf(ctx, player)
		if err != nil {
			svc.logger().Warn("failed to read balance", "player", player, "err", err)
			balance = nil
		}
	}
	return RenderStats(st, balance, svc.Token), nil
}

// Init initializes the model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		default:
			m.goingBack = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the statistics panel.
func (m StatsModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("MY STATS", m.width)))
	b.WriteString("\n\n")

	var body string
	if m.err != nil {
		body = errStyle.Render("Could not load stats: " + m.err.Error())
	} else {
		body = panelStyle.Render(m.body)
	}
	for _, line := range strings.Split(body, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(centerText("Any key: Back  |  Q: Quit", m.width)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

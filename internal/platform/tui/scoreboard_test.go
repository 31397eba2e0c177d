package tui

import (
	"context"
	"math/big"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ulo-snake/internal/ledger"
	"github.com/vovakirdan/ulo-snake/internal/token"
)

func seedLedger(t *testing.T, l ledger.Ledger, level int, scores ...int) {
	t.Helper()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, s := range scores {
		_, err := l.Record(context.Background(), ledger.Entry{
			Player:      "p",
			DisplayName: "p",
			Score:       s,
			Level:       level,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
}

func updateScores(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func entryScores(entries []ledger.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func TestScoreboardViews(t *testing.T) {
	mem := ledger.NewMemory()
	seedLedger(t, mem, 1, 30, 50, 10)
	seedLedger(t, mem, 2, 70)

	m := NewScoreboardModel(mem, 1, 100, 40)
	if got := entryScores(m.Entries()); len(got) != 3 || got[0] != 50 || got[2] != 10 {
		t.Errorf("top entries = %v, expected [50 30 10]", got)
	}

	m = updateScores(t, m, runeKey("t"))
	if m.ScoreView() != ViewRecent {
		t.Fatal("t should switch to the recent view")
	}
	if got := entryScores(m.Entries()); got[0] != 10 || got[2] != 30 {
		t.Errorf("recent entries = %v, expected [10 50 30]", got)
	}

	m = updateScores(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Level() != 2 {
		t.Fatalf("level = %d, expected 2", m.Level())
	}
	if got := entryScores(m.Entries()); len(got) != 1 || got[0] != 70 {
		t.Errorf("level 2 entries = %v, expected [70]", got)
	}
}

func TestScoreboardLevelWraps(t *testing.T) {
	m := NewScoreboardModel(ledger.NewMemory(), 1, 80, 24)

	m = updateScores(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Level() != 5 {
		t.Errorf("left from level 1 = %d, expected 5", m.Level())
	}
	m = updateScores(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Level() != 1 {
		t.Errorf("right from level 5 = %d, expected 1", m.Level())
	}

	if NewScoreboardModel(nil, 42, 80, 24).Level() != 1 {
		t.Error("an unknown level should open level 1")
	}
}

func TestScoreboardLimitCycle(t *testing.T) {
	scores := make([]int, 30)
	for i := range scores {
		scores[i] = i
	}
	mem := ledger.NewMemory()
	seedLedger(t, mem, 3, scores...)

	m := NewScoreboardModel(mem, 3, 80, 24)
	if m.Limit() != 10 || len(m.Entries()) != 10 {
		t.Fatalf("limit %d with %d entries, expected 10", m.Limit(), len(m.Entries()))
	}

	m = updateScores(t, m, runeKey("n"))
	if m.Limit() != 25 || len(m.Entries()) != 25 {
		t.Errorf("limit %d with %d entries, expected 25", m.Limit(), len(m.Entries()))
	}
	m = updateScores(t, m, runeKey("n"))
	m = updateScores(t, m, runeKey("n"))
	if m.Limit() != 100 || len(m.Entries()) != 30 {
		t.Errorf("limit %d with %d entries, expected all 30", m.Limit(), len(m.Entries()))
	}
	m = updateScores(t, m, runeKey("n"))
	if m.Limit() != 10 {
		t.Errorf("limit should cycle back to 10, got %d", m.Limit())
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(ledger.NewMemory(), 1, 80, 24)
	if !strings.Contains(m.View(), "No scores") {
		t.Error("an empty level should say so")
	}

	back := updateScores(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.IsGoingBack() || back.IsQuitting() {
		t.Error("esc should go back")
	}
	quit := updateScores(t, m, runeKey("q"))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestEntryRows(t *testing.T) {
	entries := []ledger.Entry{
		{DisplayName: "alice (Al)", Score: 120, Level: 4, CreatedAt: time.Now()},
		{DisplayName: "bob", Score: 80, Level: 4, CreatedAt: time.Now()},
	}
	rows := EntryRows(entries)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "alice (Al)" || rows[0][2] != "Expert" || rows[0][3] != "120" {
		t.Errorf("row = %v", rows[0])
	}
	if rows[1][0] != "#2" {
		t.Errorf("second rank = %q", rows[1][0])
	}
}

func TestRenderStats(t *testing.T) {
	st := ledger.PlayerStats{
		Player:       "alice",
		GamesPlayed:  3,
		Submissions:  2,
		LastScore:    40,
		HighestScore: 90,
		LastPlayed:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	out := RenderStats(st, token.ULO.BaseUnits(130), token.ULO)

	for _, want := range []string{"alice", "Games played:", "3", "Highest score:", "90", "130 ULO"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}

	out = RenderStats(ledger.PlayerStats{Player: "new"}, nil, token.ULO)
	if !strings.Contains(out, "never") || !strings.Contains(out, "n/a") {
		t.Errorf("empty stats should show placeholders:\n%s", out)
	}
	if strings.Contains(RenderStats(st, big.NewInt(0), token.ULO), "n/a") {
		t.Error("a zero balance is still a balance")
	}
}

func TestScoreboardNarrowTabs(t *testing.T) {
	m := NewScoreboardModel(ledger.NewMemory(), 4, 70, 24)

	view := m.View()
	for _, name := range []string{"Easy", "Medium", "Hard", "Expert", "Master"} {
		if !strings.Contains(view, name) {
			t.Errorf("narrow view missing the %q tab:\n%s", name, view)
		}
	}
	if strings.Contains(view, "> 4 Expert") {
		t.Error("a narrow window should not show the sidebar")
	}
}

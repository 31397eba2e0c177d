package ledger

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func record(t *testing.T, l Ledger, player string, score, level int, offset time.Duration) EntryID {
	t.Helper()
	id, err := l.Record(context.Background(), Entry{
		Player:      player,
		DisplayName: FormatDisplayName(player, ""),
		Score:       score,
		Level:       level,
		CreatedAt:   baseTime.Add(offset),
	})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	return id
}

func scoresOf(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func TestMemoryTopN(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	record(t, l, "p1", 100, 1, 0)
	record(t, l, "p2", 50, 1, time.Second)
	record(t, l, "p3", 200, 1, 2*time.Second)
	record(t, l, "p4", 500, 2, 3*time.Second) // Different level

	top, err := l.TopN(ctx, 1, 10)
	if err != nil {
		t.Fatalf("TopN() failed: %v", err)
	}
	if got := scoresOf(top); !reflect.DeepEqual(got, []int{200, 100, 50}) {
		t.Errorf("TopN() scores = %v, expected [200 100 50]", got)
	}

	top, _ = l.TopN(ctx, 1, 2)
	if len(top) != 2 {
		t.Errorf("TopN() with limit 2 returned %d entries", len(top))
	}

	top, _ = l.TopN(ctx, 3, 10)
	if len(top) != 0 {
		t.Errorf("TopN() for empty level returned %d entries", len(top))
	}
}

func TestMemoryTopNTieBreak(t *testing.T) {
	l := NewMemory()

	first := record(t, l, "early", 70, 2, 0)
	record(t, l, "mid", 90, 2, time.Second)
	second := record(t, l, "late", 70, 2, 2*time.Second)

	top, err := l.TopN(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("TopN() failed: %v", err)
	}
	if top[1].ID != first || top[2].ID != second {
		t.Errorf("equal scores should keep insertion order, got IDs %d, %d", top[1].ID, top[2].ID)
	}
}

func TestMemoryTwoPlayersSameLevel(t *testing.T) {
	l := NewMemory()

	record(t, l, "p1", 150, 4, 0)
	record(t, l, "p2", 100, 4, time.Second)

	top, _ := l.TopN(context.Background(), 4, 2)
	if len(top) != 2 || top[0].Player != "p1" || top[1].Player != "p2" {
		t.Errorf("TopN() = %+v, expected p1 (150) then p2 (100)", top)
	}
}

func TestMemoryRecentN(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	for i := range 5 {
		record(t, l, fmt.Sprintf("p%d", i), (i+1)*10, 1, time.Duration(i)*time.Second)
	}

	recent, err := l.RecentN(ctx, 1, 3)
	if err != nil {
		t.Fatalf("RecentN() failed: %v", err)
	}
	if got := scoresOf(recent); !reflect.DeepEqual(got, []int{50, 40, 30}) {
		t.Errorf("RecentN() scores = %v, expected [50 40 30]", got)
	}

	again, _ := l.RecentN(ctx, 1, 3)
	if !reflect.DeepEqual(recent, again) {
		t.Error("RecentN() should be stable without intervening writes")
	}
}

func TestMemoryQueriesAreSnapshots(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()
	record(t, l, "p1", 10, 1, 0)

	top, _ := l.TopN(ctx, 1, 10)
	top[0].Score = 9999

	fresh, _ := l.TopN(ctx, 1, 10)
	if fresh[0].Score != 10 {
		t.Error("mutating a query result should not change the ledger")
	}

	record(t, l, "p2", 20, 1, time.Second)
	if len(top) != 1 {
		t.Error("earlier results should not grow after a new record")
	}
}

func TestMemoryNonPositiveLimit(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()
	for i := range 15 {
		record(t, l, "p", i, 1, time.Duration(i)*time.Second)
	}

	tests := []struct {
		name  string
		query func(context.Context, int, int) ([]Entry, error)
		n     int
	}{
		{"top zero", l.TopN, 0},
		{"top negative", l.TopN, -1},
		{"recent zero", l.RecentN, 0},
		{"recent negative", l.RecentN, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query(ctx, 1, tt.n)
			if err != nil {
				t.Fatalf("query error = %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("n=%d returned %v, expected an empty slice", tt.n, got)
			}
		})
	}
}

func TestMemoryConcurrentWriters(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				//nolint:errcheck // Memory.Record only fails on a cancelled context
				l.Record(ctx, Entry{Player: fmt.Sprintf("w%d", w), Score: i, Level: 1})
				l.TopN(ctx, 1, 5)    //nolint:errcheck
				l.RecentN(ctx, 1, 5) //nolint:errcheck
			}
		}()
	}
	wg.Wait()

	all, _ := l.RecentN(ctx, 1, 1000)
	if len(all) != 400 {
		t.Fatalf("expected 400 entries, got %d", len(all))
	}
	seen := make(map[EntryID]bool)
	for _, e := range all {
		if seen[e.ID] {
			t.Fatalf("duplicate entry ID %d", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestMemoryCancelledContext(t *testing.T) {
	l := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Record(ctx, Entry{Player: "p", Level: 1}); err == nil {
		t.Error("Record() should fail on a cancelled context")
	}
	recent, _ := l.RecentN(context.Background(), 1, 10)
	if len(recent) != 0 {
		t.Error("a failed Record() should not append")
	}
}

func TestMemoryPlayerStats(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	l.TrackStart(ctx, "p1") //nolint:errcheck
	l.TrackStart(ctx, "p1") //nolint:errcheck
	l.TrackStart(ctx, "p1") //nolint:errcheck
	record(t, l, "p1", 100, 1, 0)
	record(t, l, "p1", 150, 2, time.Second)
	record(t, l, "p1", 40, 1, 2*time.Second)
	record(t, l, "p2", 999, 1, 3*time.Second)

	stats, err := l.PlayerStats(ctx, "p1")
	if err != nil {
		t.Fatalf("PlayerStats() failed: %v", err)
	}
	want := PlayerStats{
		Player:       "p1",
		GamesPlayed:  3,
		Submissions:  3,
		LastScore:    40,
		HighestScore: 150,
		LastPlayed:   baseTime.Add(2 * time.Second),
	}
	if stats != want {
		t.Errorf("PlayerStats() = %+v, expected %+v", stats, want)
	}
}

func TestRewardFor(t *testing.T) {
	if RewardFor(0) != 0 {
		t.Errorf("RewardFor(0) = %d, expected 0", RewardFor(0))
	}
	if RewardFor(-5) != 0 {
		t.Errorf("RewardFor(-5) = %d, expected 0", RewardFor(-5))
	}
	prev := RewardFor(0)
	for score := 1; score <= 1000; score++ {
		r := RewardFor(score)
		if r < prev {
			t.Fatalf("RewardFor is not monotonic at %d", score)
		}
		prev = r
	}
	if RewardFor(120) != 120 {
		t.Errorf("RewardFor(120) = %d, expected 120", RewardFor(120))
	}
}

func TestFormatDisplayName(t *testing.T) {
	tests := []struct {
		player, name, expected string
	}{
		{"0xabc", "John", "0xabc (John)"},
		{"0xabc", "", "0xabc"},
		{"0xabc", "   ", "0xabc"},
		{"alice", " Ann ", "alice (Ann)"},
	}
	for _, tc := range tests {
		if got := FormatDisplayName(tc.player, tc.name); got != tc.expected {
			t.Errorf("FormatDisplayName(%q, %q) = %q, expected %q", tc.player, tc.name, got, tc.expected)
		}
	}
}

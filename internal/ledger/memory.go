package ledger

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Ledger backed by a slice log.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
	starts  map[string]int
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{
		starts: make(map[string]int),
	}
}

// Record appends an entry.
func (m *Memory) Record(ctx context.Context, e Entry) (EntryID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = EntryID(len(m.entries) + 1)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	m.entries = append(m.entries, e)
	return e.ID, nil
}

// TopN returns the best entries for level.
func (m *Memory) TopN(ctx context.Context, level, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return []Entry{}, nil
	}

	entries := m.levelEntries(level)
	// Stable sort keeps insertion order among equal scores.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// RecentN returns the latest entries for level.
func (m *Memory) RecentN(ctx context.Context, level, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return []Entry{}, nil
	}

	entries := m.levelEntries(level)
	out := make([]Entry, 0, min(n, len(entries)))
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// levelEntries copies the entries for level in insertion order.
func (m *Memory) levelEntries(level int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Entry
	for _, e := range m.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// TrackStart counts a started session for player.
func (m *Memory) TrackStart(ctx context.Context, player string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts[player]++
	return nil
}

// PlayerStats aggregates the player's entries across all levels.
func (m *Memory) PlayerStats(ctx context.Context, player string) (PlayerStats, error) {
	if err := ctx.Err(); err != nil {
		return PlayerStats{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := PlayerStats{Player: player, GamesPlayed: m.starts[player]}
	for _, e := range m.entries {
		if e.Player != player {
			continue
		}
		stats.Submissions++
		stats.LastScore = e.Score
		stats.LastPlayed = e.CreatedAt
		if e.Score > stats.HighestScore {
			stats.HighestScore = e.Score
		}
	}
	return stats, nil
}

var (
	_ Ledger      = (*Memory)(nil)
	_ StatsReader = (*Memory)(nil)
	_ PlayTracker = (*Memory)(nil)
)

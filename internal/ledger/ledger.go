// Package ledger defines the append-only score ledger: one immutable entry per
// submitted session, queried per level as top-N or recent-N views.
package ledger

import (
	"context"
	"strings"
	"time"
)

// EntryID identifies a recorded entry. IDs grow with insertion order.
type EntryID int64

// Entry is a single recorded score. Entries are never mutated after Record.
type Entry struct {
	ID          EntryID
	Player      string // Opaque identity key
	DisplayName string // Formatted name shown on the leaderboard
	Score       int
	Level       int
	CreatedAt   time.Time
}

// Ledger records scores and serves per-level views.
// Implementations must be safe for concurrent use, and query results must be
// snapshots the caller may keep.
type Ledger interface {
	// Record appends an entry and returns its ID. The entry's ID field is ignored.
	Record(ctx context.Context, e Entry) (EntryID, error)

	// TopN returns at most n entries for level, score descending, ties broken
	// by insertion order (earlier first). n <= 0 yields no entries.
	TopN(ctx context.Context, level, n int) ([]Entry, error)

	// RecentN returns at most n entries for level, most recently recorded first.
	RecentN(ctx context.Context, level, n int) ([]Entry, error)
}

// PlayerStats aggregates one player's history.
type PlayerStats struct {
	Player       string
	GamesPlayed  int // Sessions started
	Submissions  int // Entries recorded
	LastScore    int
	HighestScore int
	LastPlayed   time.Time
}

// StatsReader derives per-player statistics from the ledger.
type StatsReader interface {
	PlayerStats(ctx context.Context, player string) (PlayerStats, error)
}

// PlayTracker counts started sessions, which the ledger alone cannot see.
type PlayTracker interface {
	TrackStart(ctx context.Context, player string) error
}

// DefaultLimit is the leaderboard size shown when the user picks none.
const DefaultLimit = 10

// Limits are the leaderboard page sizes offered to users.
var Limits = []int{10, 25, 50, 100}

// FormatDisplayName builds the leaderboard name: "player (name)", or just the
// player identity when name is blank.
func FormatDisplayName(player, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return player
	}
	return player + " (" + name + ")"
}

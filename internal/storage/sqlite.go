// Package storage provides SQLite-based persistence for the score ledger,
// started-game counters and token balances.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ulo-snake/internal/config"
	"github.com/vovakirdan/ulo-snake/internal/ledger"
	"github.com/vovakirdan/ulo-snake/internal/token"
)

// timeLayout is how created_at is written. Lexical order equals time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// LevelStats contains aggregated statistics for one level.
type LevelStats struct {
	Level      int
	Entries    int
	Players    int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath = config.ExpandHome(dbPath)

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// A single connection serializes writers and keeps insertion order strict.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			display_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_level ON scores(level, id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(level, score DESC, id);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player, id);

		CREATE TABLE IF NOT EXISTS games_started (
			player TEXT PRIMARY KEY,
			count INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS balances (
			player TEXT PRIMARY KEY,
			amount TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record appends a score entry and returns its ID.
func (s *Store) Record(ctx context.Context, e ledger.Entry) (ledger.EntryID, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (player, display_name, score, level, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Player, e.DisplayName, e.Score, e.Level, e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return ledger.EntryID(id), nil
}

// TopN retrieves the best n entries for level, ties by insertion order.
func (s *Store) TopN(ctx context.Context, level, n int) ([]ledger.Entry, error) {
	if n <= 0 {
		return []ledger.Entry{}, nil
	}
	return s.queryEntries(ctx,
		`SELECT id, player, display_name, score, level, created_at
		 FROM scores
		 WHERE level = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		level, n,
	)
}

// RecentN retrieves the latest n entries for level.
func (s *Store) RecentN(ctx context.Context, level, n int) ([]ledger.Entry, error) {
	if n <= 0 {
		return []ledger.Entry{}, nil
	}
	return s.queryEntries(ctx,
		`SELECT id, player, display_name, score, level, created_at
		 FROM scores
		 WHERE level = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		level, n,
	)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]ledger.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var e ledger.Entry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.DisplayName, &e.Score, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// TrackStart increments the started-game counter for player.
func (s *Store) TrackStart(ctx context.Context, player string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games_started (player, count) VALUES (?, 1)
		 ON CONFLICT(player) DO UPDATE SET count = count + 1`,
		player,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot track game start: %w", err)
	}
	return nil
}

// PlayerStats aggregates a player's history across levels.
func (s *Store) PlayerStats(ctx context.Context, player string) (ledger.PlayerStats, error) {
	stats := ledger.PlayerStats{Player: player}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0) FROM scores WHERE player = ?`,
		player,
	).Scan(&stats.Submissions, &stats.HighestScore)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get player stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRowContext(ctx,
		`SELECT score, created_at FROM scores WHERE player = ? ORDER BY id DESC LIMIT 1`,
		player,
	).Scan(&stats.LastScore, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return stats, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT count FROM games_started WHERE player = ?`,
		player,
	).Scan(&stats.GamesPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return stats, fmt.Errorf("storage: cannot get games started: %w", err)
	}

	return stats, nil
}

// LevelStats retrieves statistics for every level that has entries.
func (s *Store) LevelStats(ctx context.Context) (map[int]*LevelStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, COUNT(*), COUNT(DISTINCT player), MAX(score), AVG(score), MAX(created_at)
		 FROM scores
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.Level, &ls.Entries, &ls.Players, &ls.HighScore, &ls.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.Level] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Credit adds amount base units to player's balance.
// Amounts are stored as decimal text because they exceed int64.
func (s *Store) Credit(ctx context.Context, player string, amount *big.Int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin credit: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	current, err := balanceIn(ctx, tx, player)
	if err != nil {
		return err
	}
	current.Add(current, amount)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO balances (player, amount) VALUES (?, ?)
		 ON CONFLICT(player) DO UPDATE SET amount = excluded.amount`,
		player, current.String(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot credit balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit credit: %w", err)
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func balanceIn(ctx context.Context, q queryRower, player string) (*big.Int, error) {
	var text string
	err := q.QueryRowContext(ctx, `SELECT amount FROM balances WHERE player = ?`, player).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query balance: %w", err)
	}

	amount, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("storage: corrupt balance for %s: %q", player, text)
	}
	return amount, nil
}

// BalanceOf returns player's balance in base units.
func (s *Store) BalanceOf(ctx context.Context, player string) (*big.Int, error) {
	return balanceIn(ctx, s.db, player)
}

// TotalSupply sums all balances.
func (s *Store) TotalSupply(ctx context.Context) (*big.Int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT player, amount FROM balances`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query balances: %w", err)
	}
	defer rows.Close()

	total := new(big.Int)
	for rows.Next() {
		var player, text string
		if err := rows.Scan(&player, &text); err != nil {
			return nil, fmt.Errorf("storage: cannot scan balance: %w", err)
		}
		amount, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, fmt.Errorf("storage: corrupt balance for %s: %q", player, text)
		}
		total.Add(total, amount)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return total, nil
}

var (
	_ ledger.Ledger      = (*Store)(nil)
	_ ledger.StatsReader = (*Store)(nil)
	_ ledger.PlayTracker = (*Store)(nil)
	_ token.Balances     = (*Store)(nil)
)

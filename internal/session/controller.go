// Package session mediates the start/submit lifecycle of snake games: one
// active session per player, a submission timeout, ledger recording and the
// reward mint that follows it.
package session

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/ulo-snake/internal/games/snake"
	"github.com/vovakirdan/ulo-snake/internal/ledger"
	"github.com/vovakirdan/ulo-snake/internal/token"
)

// DefaultTimeout is how long a session may run before its score is refused.
const DefaultTimeout = 10 * time.Minute

// Config holds controller settings.
type Config struct {
	Timeout time.Duration
	Engine  snake.Options
	Seed    int64 // Zero seeds from the clock
}

// DefaultConfig returns the standard controller settings.
func DefaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
		Engine:  snake.DefaultOptions(),
	}
}

// Session is an active game for one player.
type Session struct {
	ID        string
	Player    string
	Level     int
	StartedAt time.Time
}

// Handle is returned by StartSession: the session and the engine to drive.
type Handle struct {
	Session Session
	Engine  *snake.Engine
}

// Submission is the result of a successful SubmitSession.
type Submission struct {
	Entry   ledger.Entry
	Reward  uint64 // Whole tokens
	Receipt token.Receipt
}

type activeSession struct {
	Session
	submitting bool // Ledger write in flight; invisible to other calls
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(ctl *Controller) {
		ctl.clock = c
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(ctl *Controller) {
		ctl.logger = l
	}
}

// WithTracker counts started sessions for player statistics.
func WithTracker(t ledger.PlayTracker) Option {
	return func(ctl *Controller) {
		ctl.tracker = t
	}
}

// Controller owns the per-player session map.
type Controller struct {
	cfg     Config
	ledger  ledger.Ledger
	minter  token.Minter
	tracker ledger.PlayTracker
	clock   Clock
	logger  *log.Logger

	mu       sync.Mutex
	sessions map[string]*activeSession
	rng      *rand.Rand // Seeds per-session engines; guarded by mu
}

// NewController creates a controller recording into l and minting with m.
func NewController(cfg Config, l ledger.Ledger, m token.Minter, opts ...Option) *Controller {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Controller{
		cfg:      cfg,
		ledger:   l,
		minter:   m,
		clock:    SystemClock{},
		logger:   log.New(io.Discard),
		sessions: make(map[string]*activeSession),
	}
	for _, opt := range opts {
		opt(c)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = c.clock.Now().UnixNano()
	}
	c.rng = rand.New(rand.NewSource(seed))
	return c
}

// Timeout returns the configured session timeout.
func (c *Controller) Timeout() time.Duration {
	return c.cfg.Timeout
}

// StartSession begins a game for player at level.
// A session older than the timeout is replaced; a live one yields ErrAlreadyPlaying.
func (c *Controller) StartSession(ctx context.Context, player string, level int) (*Handle, error) {
	if !snake.ValidLevel(level) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	c.mu.Lock()
	now := c.clock.Now()
	if prev, ok := c.sessions[player]; ok {
		if prev.submitting || !c.expired(prev.Session, now) {
			c.mu.Unlock()
			return nil, ErrAlreadyPlaying
		}
		c.logger.Info("replacing expired session", "player", player, "session", prev.ID, "level", prev.Level)
	}

	s := Session{
		ID:        uuid.NewString(),
		Player:    player,
		Level:     level,
		StartedAt: now,
	}
	c.sessions[player] = &activeSession{Session: s}
	engine := snake.NewEngine(c.cfg.Engine, rand.New(rand.NewSource(c.rng.Int63())))
	c.mu.Unlock()

	engine.Reset(level)

	if c.tracker != nil {
		if err := c.tracker.TrackStart(ctx, player); err != nil {
			c.logger.Warn("failed to count game start", "player", player, "err", err)
		}
	}

	c.logger.Info("session started", "player", player, "session", s.ID, "level", level)
	return &Handle{Session: s, Engine: engine}, nil
}

// SubmitSession records the final score of player's active session and mints
// the reward. The ledger is written first; a mint failure after that returns a
// *MintError and leaves the entry in place.
func (c *Controller) SubmitSession(ctx context.Context, player, displayName string, score, level int) (*Submission, error) {
	c.mu.Lock()
	s, ok := c.sessions[player]
	if !ok || s.submitting {
		c.mu.Unlock()
		return nil, ErrNoActiveSession
	}

	now := c.clock.Now()
	if c.expired(s.Session, now) {
		delete(c.sessions, player)
		c.mu.Unlock()
		c.logger.Warn("session timed out", "player", player, "session", s.ID, "age", now.Sub(s.StartedAt))
		return nil, ErrSessionTimedOut
	}

	switch {
	case !snake.ValidLevel(level):
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	case level != s.Level:
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: started %d, submitted %d", ErrLevelMismatch, s.Level, level)
	case score < 0:
		c.mu.Unlock()
		return nil, ErrInvalidScore
	}

	s.submitting = true
	c.mu.Unlock()

	entry := ledger.Entry{
		Player:      player,
		DisplayName: ledger.FormatDisplayName(player, displayName),
		Score:       score,
		Level:       level,
		CreatedAt:   now,
	}
	id, err := c.ledger.Record(ctx, entry)
	if err != nil {
		c.mu.Lock()
		s.submitting = false
		c.mu.Unlock()
		c.logger.Error("failed to record score", "player", player, "session", s.ID, "err", err)
		return nil, fmt.Errorf("session: record score: %w", err)
	}
	entry.ID = id

	c.mu.Lock()
	if c.sessions[player] == s {
		delete(c.sessions, player)
	}
	c.mu.Unlock()

	reward := ledger.RewardFor(score)
	receipt, err := c.minter.Mint(ctx, player, reward)
	if err != nil {
		c.logger.Error("reward mint failed", "player", player, "entry", id, "units", reward, "err", err)
		return nil, &MintError{Entry: entry, Player: player, Units: reward, Err: err}
	}

	c.logger.Info("score submitted",
		"player", player, "session", s.ID, "level", level, "score", score,
		"entry", id, "reward", reward, "tx", receipt.TxID)
	return &Submission{Entry: entry, Reward: reward, Receipt: receipt}, nil
}

// RetryMint repeats the mint that a MintError reported.
func (c *Controller) RetryMint(ctx context.Context, failed *MintError) (token.Receipt, error) {
	receipt, err := c.minter.Mint(ctx, failed.Player, failed.Units)
	if err != nil {
		return token.Receipt{}, &MintError{Entry: failed.Entry, Player: failed.Player, Units: failed.Units, Err: err}
	}
	c.logger.Info("reward mint retried", "player", failed.Player, "entry", failed.Entry.ID, "tx", receipt.TxID)
	return receipt, nil
}

// ResetSession closes player's active session without recording anything.
func (c *Controller) ResetSession(ctx context.Context, player string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[player]
	if !ok || s.submitting {
		return ErrNoActiveSession
	}
	delete(c.sessions, player)
	c.logger.Info("session reset", "player", player, "session", s.ID)
	return nil
}

// Active returns player's active session.
func (c *Controller) Active(player string) (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[player]
	if !ok || s.submitting {
		return Session{}, false
	}
	return s.Session, true
}

// ActiveCount returns the number of open sessions.
func (c *Controller) ActiveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

func (c *Controller) expired(s Session, now time.Time) bool {
	return now.Sub(s.StartedAt) > c.cfg.Timeout
}

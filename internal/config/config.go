// Package config provides YAML-based configuration for the snake game,
// its ledger storage, token minting and SSH server.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/ulo-snake/internal/games/snake"
)

// Config is the full application configuration.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Scoring ScoringConfig `yaml:"scoring"`
	Timing  TimingConfig  `yaml:"timing"`
	Session SessionConfig `yaml:"session"`
	Token   TokenConfig   `yaml:"token"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// GridConfig defines the board size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ScoringConfig defines points per food; a meal is worth level * points_per_food.
type ScoringConfig struct {
	PointsPerFood int `yaml:"points_per_food"`
}

// TimingConfig defines the tick period per level.
type TimingConfig struct {
	BasePeriod time.Duration `yaml:"base_period"` // Level 1
	PeriodStep time.Duration `yaml:"period_step"` // Subtracted per level above 1
	MinPeriod  time.Duration `yaml:"min_period"`
}

// Period returns the tick period for level: base - (level-1)*step, never below min.
func (t TimingConfig) Period(level int) time.Duration {
	if level < snake.MinLevel {
		level = snake.MinLevel
	}
	p := t.BasePeriod - time.Duration(level-1)*t.PeriodStep
	if p < t.MinPeriod {
		return t.MinPeriod
	}
	return p
}

// SessionConfig defines session lifecycle limits.
type SessionConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MailboxSize int           `yaml:"mailbox_size"` // Buffered input events per runner
	FrameBuffer int           `yaml:"frame_buffer"` // Buffered frames per runner
}

// TokenConfig defines the reward token metadata.
type TokenConfig struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals int    `yaml:"decimals"`
}

// StorageConfig defines where the ledger database lives.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Used by the local TUI, which owns the terminal
}

// EngineOptions converts the grid and scoring sections to engine options.
func (c Config) EngineOptions() snake.Options {
	return snake.Options{
		Width:         c.Grid.Width,
		Height:        c.Grid.Height,
		PointsPerFood: c.Scoring.PointsPerFood,
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Grid.Width < 2 || c.Grid.Height < 2 {
		errs = append(errs, fmt.Errorf("grid must be at least 2x2, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Scoring.PointsPerFood <= 0 {
		errs = append(errs, fmt.Errorf("scoring.points_per_food must be positive, got %d", c.Scoring.PointsPerFood))
	}
	if c.Timing.MinPeriod <= 0 {
		errs = append(errs, fmt.Errorf("timing.min_period must be positive, got %s", c.Timing.MinPeriod))
	}
	if c.Timing.BasePeriod < c.Timing.MinPeriod {
		errs = append(errs, fmt.Errorf("timing.base_period %s is below min_period %s", c.Timing.BasePeriod, c.Timing.MinPeriod))
	}
	if c.Timing.PeriodStep < 0 {
		errs = append(errs, fmt.Errorf("timing.period_step must not be negative, got %s", c.Timing.PeriodStep))
	}
	if c.Session.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("session.timeout must be positive, got %s", c.Session.Timeout))
	}
	if c.Session.MailboxSize <= 0 || c.Session.FrameBuffer <= 0 {
		errs = append(errs, errors.New("session.mailbox_size and session.frame_buffer must be positive"))
	}
	if c.Token.Symbol == "" {
		errs = append(errs, errors.New("token.symbol is required"))
	}
	if c.Token.Decimals < 0 || c.Token.Decimals > 36 {
		errs = append(errs, fmt.Errorf("token.decimals must be in [0,36], got %d", c.Token.Decimals))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

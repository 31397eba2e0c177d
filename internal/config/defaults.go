package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/ulosnake.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:  24,
			Height: 24,
		},
		Scoring: ScoringConfig{
			PointsPerFood: 10,
		},
		Timing: TimingConfig{
			BasePeriod: 150 * time.Millisecond,
			PeriodStep: 25 * time.Millisecond,
			MinPeriod:  25 * time.Millisecond,
		},
		Session: SessionConfig{
			Timeout:     10 * time.Minute,
			MailboxSize: 16,
			FrameBuffer: 4,
		},
		Token: TokenConfig{
			Name:     "Ultimate Snake ULO",
			Symbol:   "ULO",
			Decimals: 18,
		},
		Storage: StorageConfig{
			Path: "~/.ulosnake/scores.db",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: ".ssh/ulosnake_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.ulosnake/ulosnake.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

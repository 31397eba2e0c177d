package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ulo-snake/internal/config"
	"github.com/vovakirdan/ulo-snake/internal/ledger"
	"github.com/vovakirdan/ulo-snake/internal/session"
	"github.com/vovakirdan/ulo-snake/internal/token"
)

// Services are the back ends shared by every UI session.
type Services struct {
	Controller *session.Controller
	Ledger     ledger.Ledger
	Stats      ledger.StatsReader // Optional
	Balances   token.Balances     // Optional
	Token      token.Token
	Timing     config.TimingConfig
	Runner     session.RunnerConfig // Period is filled in per level
	Logger     *log.Logger
}

// runnerConfig returns the runner settings for level.
func (s *Services) runnerConfig(level int) session.RunnerConfig {
	cfg := s.Runner
	cfg.Period = s.Timing.Period(level)
	return cfg
}

func (s *Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

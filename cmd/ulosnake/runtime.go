package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ulo-snake/internal/config"
	"github.com/vovakirdan/ulo-snake/internal/platform/tui"
	"github.com/vovakirdan/ulo-snake/internal/session"
	"github.com/vovakirdan/ulo-snake/internal/storage"
	"github.com/vovakirdan/ulo-snake/internal/token"
)

// runtime holds the opened back ends for one command.
type runtime struct {
	cfg     config.Config
	store   *storage.Store
	svc     *tui.Services
	logger  *log.Logger
	logFile *os.File
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger creates the structured logger used by every component.
func newLogger(cfg config.LogConfig, w io.Writer) (*log.Logger, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ulosnake",
		Level:           level,
	}), nil
}

// openLogFile opens the append-only log file for commands that own the terminal.
func openLogFile(path string) (*os.File, error) {
	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// tokenFrom converts the token section of the config.
func tokenFrom(cfg config.TokenConfig) token.Token {
	return token.Token{Name: cfg.Name, Symbol: cfg.Symbol, Decimals: cfg.Decimals}
}

// openRuntime loads config, opens the ledger database and wires the session
// controller to it. When toFile is set, logs go to the configured log file
// instead of stderr.
func openRuntime(toFile bool) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg}
	var w io.Writer = os.Stderr
	if toFile && cfg.Log.File != "" {
		rt.logFile, err = openLogFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		w = rt.logFile
	}
	rt.logger, err = newLogger(cfg.Log, w)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.store, err = storage.Open(cfg.Storage.Path)
	if err != nil {
		rt.Close()
		return nil, err
	}

	tok := tokenFrom(cfg.Token)
	ctl := session.NewController(
		session.Config{
			Timeout: cfg.Session.Timeout,
			Engine:  cfg.EngineOptions(),
			Seed:    flagSeed,
		},
		rt.store,
		token.NewMint(tok, rt.store),
		session.WithLogger(rt.logger.WithPrefix("session")),
		session.WithTracker(rt.store),
	)

	rt.svc = &tui.Services{
		Controller: ctl,
		Ledger:     rt.store,
		Stats:      rt.store,
		Balances:   rt.store,
		Token:      tok,
		Timing:     cfg.Timing,
		Runner: session.RunnerConfig{
			MailboxSize: cfg.Session.MailboxSize,
			FrameBuffer: cfg.Session.FrameBuffer,
		},
		Logger: rt.logger,
	}

	rt.logger.Debug("runtime ready", "db", cfg.Storage.Path, "token", tok.Symbol, "timeout", cfg.Session.Timeout)
	return rt, nil
}

// Close releases the database and log file.
func (rt *runtime) Close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil && rt.logger != nil {
			rt.logger.Warn("failed to close database", "err", err)
		}
	}
	if rt.logFile != nil {
		rt.logFile.Close()
	}
}

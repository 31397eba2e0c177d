package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestTimingPeriod(t *testing.T) {
	timing := Default().Timing
	tests := []struct {
		level    int
		expected time.Duration
	}{
		{0, 150 * time.Millisecond},
		{1, 150 * time.Millisecond},
		{2, 125 * time.Millisecond},
		{3, 100 * time.Millisecond},
		{4, 75 * time.Millisecond},
		{5, 50 * time.Millisecond},
		{9, 25 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := timing.Period(tc.level); got != tc.expected {
			t.Errorf("Period(%d) = %s, expected %s", tc.level, got, tc.expected)
		}
	}
}

func TestLoadCustomPathOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "grid:\n  width: 12\ntiming:\n  base_period: 200ms\nsession:\n  timeout: 2m\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Grid.Width != 12 || cfg.Grid.Height != 24 {
		t.Errorf("grid = %+v, expected 12x24", cfg.Grid)
	}
	if cfg.Timing.BasePeriod != 200*time.Millisecond || cfg.Timing.MinPeriod != 25*time.Millisecond {
		t.Errorf("timing = %+v", cfg.Timing)
	}
	if cfg.Session.Timeout != 2*time.Minute {
		t.Errorf("timeout = %s", cfg.Session.Timeout)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("grid: [1, 2"), 0o644) //nolint:errcheck
	if _, err := Load(bad); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	os.WriteFile(invalid, []byte("grid:\n  width: 1\n"), 0o644) //nolint:errcheck
	_, err := Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "grid") {
		t.Errorf("Load() should reject a 1-wide grid, got %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("without config files Load() should return the embedded defaults")
	}

	os.MkdirAll("configs", 0o755)                                                              //nolint:errcheck
	os.WriteFile(filepath.Join("configs", FileName), []byte("server:\n  port: 3000\n"), 0o644) //nolint:errcheck
	cfg, _ = Load("")
	if cfg.Server.Port != 3000 {
		t.Errorf("local config not used, port = %d", cfg.Server.Port)
	}

	userDir := filepath.Join(home, ".ulosnake")
	os.MkdirAll(userDir, 0o755)                                                                   //nolint:errcheck
	os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("server:\n  port: 4000\n"), 0o644) //nolint:errcheck
	cfg, _ = Load("")
	if cfg.Server.Port != 4000 {
		t.Errorf("user config should win over local config, port = %d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero points", func(c *Config) { c.Scoring.PointsPerFood = 0 }},
		{"min period", func(c *Config) { c.Timing.MinPeriod = 0 }},
		{"base below min", func(c *Config) { c.Timing.BasePeriod = time.Millisecond }},
		{"timeout", func(c *Config) { c.Session.Timeout = 0 }},
		{"mailbox", func(c *Config) { c.Session.MailboxSize = 0 }},
		{"symbol", func(c *Config) { c.Token.Symbol = "" }},
		{"decimals", func(c *Config) { c.Token.Decimals = -1 }},
		{"storage", func(c *Config) { c.Storage.Path = "" }},
		{"port", func(c *Config) { c.Server.Port = 70000 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/snake")
	if got := ExpandHome("~/.ulosnake/scores.db"); got != "/home/snake/.ulosnake/scores.db" {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}

func TestEngineOptions(t *testing.T) {
	opts := Default().EngineOptions()
	if opts.Width != 24 || opts.Height != 24 || opts.PointsPerFood != 10 {
		t.Errorf("EngineOptions() = %+v", opts)
	}
}

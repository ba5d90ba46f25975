package main

import (
	"log/slog"
	"testing"

	"github.com/andreiashu/tzcountry/internal/generate"
)

func TestLoadConfigPrecedence(t *testing.T) {
	t.Setenv("TZCOUNTRY_DATA_DIR", "/env/data")
	t.Setenv("TZCOUNTRY_LOG_LEVEL", "debug")
	t.Setenv("TZCOUNTRY_MOMENT_URL", "")

	cfg, err := loadConfig([]string{"--data-dir", "/flag/data", "--offline", "--no-iso"})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.DataDir != "/flag/data" {
		t.Errorf("DataDir = %q, want the flag value", cfg.DataDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want the env value", cfg.LogLevel)
	}
	if cfg.MomentURL != generate.DefaultMomentURL {
		t.Errorf("MomentURL = %q, want the default", cfg.MomentURL)
	}
	if !cfg.Offline || !cfg.NoISO || cfg.Validate {
		t.Errorf("bools = offline %v, no-iso %v, validate %v", cfg.Offline, cfg.NoISO, cfg.Validate)
	}
}

func TestLoadConfigUnknownFlag(t *testing.T) {
	if _, err := loadConfig([]string{"--bogus"}); err == nil {
		t.Error("loadConfig() error = nil for an unknown flag")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := parseLevel(in)
		if err != nil || got != want {
			t.Errorf("parseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseLevel("loud"); err == nil {
		t.Error("parseLevel(loud) error = nil")
	}
}

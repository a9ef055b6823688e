package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Symbol != "BTCUSDT" || cfg.Interval != "5m" {
		t.Fatalf("defaults wrong: %s %s", cfg.Symbol, cfg.Interval)
	}
	if cfg.Leverage.String() != "10" {
		t.Fatalf("leverage default = %s, want 10", cfg.Leverage)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SYMBOL", "ETHUSDT")
	t.Setenv("LEVERAGE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Symbol != "ETHUSDT" {
		t.Fatalf("symbol = %s, want ETHUSDT", cfg.Symbol)
	}
	if cfg.Leverage.String() != "25" {
		t.Fatalf("leverage = %s, want 25", cfg.Leverage)
	}
}

func TestLoadRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	content := "disabled:\n  - Z-Score\n  - Hurst Regime\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	disabled, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	if !disabled["Z-Score"] || !disabled["Hurst Regime"] {
		t.Fatalf("disabled set wrong: %v", disabled)
	}
	if disabled["SuperTrend"] {
		t.Fatal("unlisted generator marked disabled")
	}
}

func TestLoadRosterEmptyPath(t *testing.T) {
	disabled, err := LoadRoster("")
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	if disabled != nil {
		t.Fatalf("expected nil map, got %v", disabled)
	}
}

func TestLoadRosterBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte("disabled: {not a list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRoster(path); err == nil {
		t.Fatal("expected parse error")
	}
}

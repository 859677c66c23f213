package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataSource.Provider != "yahoo" {
		t.Errorf("default provider = %q, want yahoo", cfg.DataSource.Provider)
	}
	if cfg.DataSource.LookbackDays != 300 {
		t.Errorf("default lookback = %d, want 300", cfg.DataSource.LookbackDays)
	}
	if cfg.DataSource.Workers != 1 {
		t.Errorf("default workers = %d, want 1", cfg.DataSource.Workers)
	}
	rules := cfg.StrategyRules()
	if rules.RSIPeriod != 14 || rules.RSIOversold != 30 || rules.RSIOverbought != 70 {
		t.Errorf("default RSI rules = %+v", rules)
	}
	if rules.MAShortWindow != 50 || rules.MALongWindow != 200 {
		t.Errorf("default MA windows = %+v", rules)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "data_source:\n  provider: stooq\n  lookback_days: 250\nrules:\n  rsi_oversold: 25\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATA_PROVIDER", "mock")
	t.Setenv("LOOKBACK_DAYS", "220")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataSource.Provider != "mock" {
		t.Errorf("env should override file: provider = %q, want mock", cfg.DataSource.Provider)
	}
	if cfg.DataSource.LookbackDays != 220 {
		t.Errorf("env should override file: lookback = %d, want 220", cfg.DataSource.LookbackDays)
	}
	if cfg.Rules.RSIOversold != 25 {
		t.Errorf("file value lost: rsi_oversold = %v, want 25", cfg.Rules.RSIOversold)
	}
	if cfg.Rules.RSIOverbought != 70 {
		t.Errorf("unset field should default: rsi_overbought = %v, want 70", cfg.Rules.RSIOverbought)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	cfg := base()
	cfg.DataSource.Provider = "bloomberg"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider should fail validation")
	}

	cfg = base()
	cfg.DataSource.LookbackDays = 100
	if err := cfg.Validate(); err == nil {
		t.Error("lookback below ma_long_window should fail validation")
	}

	cfg = base()
	cfg.Rules.RSIOversold = 80
	if err := cfg.Validate(); err == nil {
		t.Error("oversold above overbought should fail validation")
	}

	cfg = base()
	cfg.Email.Host = "smtp.example.com"
	if err := cfg.Validate(); err == nil {
		t.Error("email host without from/to should fail validation")
	}
}

package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Currency != "BTC" {
		t.Errorf("Bad Currency: %v, expected BTC", cfg.Currency)
	}
	if cfg.RiskFreeRate != 0.05 {
		t.Errorf("Bad RiskFreeRate: %v, expected 0.05", cfg.RiskFreeRate)
	}
	if cfg.DayCountBasis != 365.25 {
		t.Errorf("Bad DayCountBasis: %v, expected 365.25", cfg.DayCountBasis)
	}
	if cfg.FetchWorkers < 1 {
		t.Errorf("Bad FetchWorkers: %v", cfg.FetchWorkers)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"currency": "eth", "risk_free_rate": 0.03, "fetch_workers": 0, "log_level": "debug"}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Currency != "ETH" {
		t.Errorf("Bad Currency: %v, expected ETH", cfg.Currency)
	}
	if cfg.RiskFreeRate != 0.03 {
		t.Errorf("Bad RiskFreeRate: %v, expected 0.03", cfg.RiskFreeRate)
	}
	// zero worker count from the file is normalized up
	if cfg.FetchWorkers != 1 {
		t.Errorf("Bad FetchWorkers: %v, expected 1", cfg.FetchWorkers)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Bad LogLevel: %v, expected debug", cfg.LogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("VOLSCOPE_CURRENCY", "sol")
	t.Setenv("VOLSCOPE_RISK_FREE_RATE", "0.02")
	t.Setenv("VOLSCOPE_FETCH_WORKERS", "8")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Currency != "SOL" {
		t.Errorf("Bad Currency: %v, expected SOL", cfg.Currency)
	}
	if cfg.RiskFreeRate != 0.02 {
		t.Errorf("Bad RiskFreeRate: %v, expected 0.02", cfg.RiskFreeRate)
	}
	if cfg.FetchWorkers != 8 {
		t.Errorf("Bad FetchWorkers: %v, expected 8", cfg.FetchWorkers)
	}
}

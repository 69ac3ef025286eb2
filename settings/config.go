package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every tunable of the scanner. Values resolve in three
// layers: built-in defaults, then an optional JSON file, then VOLSCOPE_*
// environment variables (a .env file is honored when present).
type Config struct {
	BaseURL           string  `json:"base_url"`
	Currency          string  `json:"currency"`
	RiskFreeRate      float64 `json:"risk_free_rate"`
	DayCountBasis     float64 `json:"day_count_basis"`
	RequestTimeoutSec int     `json:"request_timeout_sec"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	FetchWorkers      int     `json:"fetch_workers"`
	OutputDir         string  `json:"output_dir"`
	LogLevel          string  `json:"log_level"`
}

func Default() Config {
	return Config{
		Currency:          "BTC",
		RiskFreeRate:      0.05,
		DayCountBasis:     365.25,
		RequestTimeoutSec: 10,
		RequestsPerSecond: 10,
		FetchWorkers:      4,
		OutputDir:         ".",
		LogLevel:          "info",
	}
}

// Load resolves the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	godotenv.Load()
	applyEnv(&cfg)
	cfg.Currency = strings.ToUpper(cfg.Currency)
	if cfg.DayCountBasis <= 0 {
		cfg.DayCountBasis = Default().DayCountBasis
	}
	if cfg.FetchWorkers < 1 {
		cfg.FetchWorkers = 1
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VOLSCOPE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("VOLSCOPE_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("VOLSCOPE_RISK_FREE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RiskFreeRate = f
		}
	}
	if v := os.Getenv("VOLSCOPE_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("VOLSCOPE_FETCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchWorkers = n
		}
	}
	if v := os.Getenv("VOLSCOPE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("VOLSCOPE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Package config reads environment-driven settings, optionally via .env,
// plus the YAML generator roster.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the decision engine and its API.
type Config struct {
	Port string

	// Market data
	BinanceTestnet bool
	UseMockSource  bool

	// Trading target
	Symbol         string
	Interval       string
	Leverage       decimal.Decimal
	InitialBalance decimal.Decimal

	// Generator roster overrides
	RosterPath         string
	DisabledGenerators map[string]bool

	// Optional CSV corpus for the k-NN pattern matcher
	PatternCorpusPath string

	// Database
	DBPath string

	// Auth
	JWTSecret     string
	AdminUser     string
	AdminPassword string
}

// Load reads environment variables into Config. A missing .env is fine.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		BinanceTestnet:    getEnv("BINANCE_TESTNET", "false") == "true",
		UseMockSource:     getEnv("USE_MOCK_SOURCE", "false") == "true",
		Symbol:            getEnv("SYMBOL", "BTCUSDT"),
		Interval:          getEnv("INTERVAL", "5m"),
		Leverage:          getEnvDecimal("LEVERAGE", "10"),
		InitialBalance:    getEnvDecimal("INITIAL_BALANCE", "10000"),
		RosterPath:        getEnv("ROSTER_PATH", ""),
		PatternCorpusPath: getEnv("PATTERN_CSV_PATH", ""),
		DBPath:            getEnv("DB_PATH", "./data/quant.db"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret"),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "admin"),
	}

	disabled, err := LoadRoster(cfg.RosterPath)
	if err != nil {
		return nil, err
	}
	cfg.DisabledGenerators = disabled

	return cfg, nil
}

type rosterFile struct {
	Disabled []string `yaml:"disabled"`
}

// LoadRoster parses the generator roster YAML. An empty path means no
// overrides; every generator stays enabled.
func LoadRoster(path string) (map[string]bool, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	var rf rosterFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}

	disabled := make(map[string]bool, len(rf.Disabled))
	for _, name := range rf.Disabled {
		disabled[name] = true
	}
	return disabled, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDecimal(key, def string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(def)
}

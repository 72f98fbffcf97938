package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Provider names accepted in MARKET_PROVIDER.
const (
	ProviderYahoo  = "yahoo"
	ProviderAlpaca = "alpaca"
	ProviderMock   = "mock"
)

// Config holds all runtime settings, resolved once at startup from the
// environment (with an optional .env file).
type Config struct {
	Port           int
	DataDir        string
	MarketProvider string
	FallbackPrice  decimal.Decimal
	PicksCron      string
	LogLevel       string
	LogPretty      bool
}

// Load reads the .env file if present, applies defaults and validates the
// result. Alpaca credentials are only required when that provider is
// actually selected.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:           getEnvAsInt("SQUEEZE_PORT", 8080),
		DataDir:        getEnv("DATA_DIR", "data"),
		MarketProvider: getEnv("MARKET_PROVIDER", ProviderYahoo),
		FallbackPrice:  getEnvAsDecimal("FALLBACK_PRICE", decimal.NewFromFloat(100.00)),
		PicksCron:      getEnv("PICKS_CRON", "0 0 9 * * *"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("LOG_PRETTY", true),
	}

	switch cfg.MarketProvider {
	case ProviderYahoo, ProviderMock:
	case ProviderAlpaca:
		var missing []string
		for _, key := range []string{"APCA_API_KEY_ID", "APCA_API_SECRET_KEY"} {
			if os.Getenv(key) == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("alpaca provider selected but missing env: %v", missing)
		}
	default:
		return nil, fmt.Errorf("unknown MARKET_PROVIDER %q", cfg.MarketProvider)
	}

	if cfg.FallbackPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("FALLBACK_PRICE must be positive, got %s", cfg.FallbackPrice)
	}

	return cfg, nil
}

package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SQUEEZE_PORT", "DATA_DIR", "MARKET_PROVIDER", "FALLBACK_PRICE",
		"PICKS_CRON", "LOG_LEVEL", "LOG_PRETTY",
		"APCA_API_KEY_ID", "APCA_API_SECRET_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, ProviderYahoo, cfg.MarketProvider)
	assert.True(t, cfg.FallbackPrice.Equal(decimal.NewFromFloat(100.00)))
	assert.Equal(t, "0 0 9 * * *", cfg.PicksCron)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQUEEZE_PORT", "9191")
	t.Setenv("MARKET_PROVIDER", "mock")
	t.Setenv("FALLBACK_PRICE", "42.50")
	t.Setenv("LOG_PRETTY", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, ProviderMock, cfg.MarketProvider)
	assert.True(t, cfg.FallbackPrice.Equal(decimal.NewFromFloat(42.50)))
	assert.False(t, cfg.LogPretty)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQUEEZE_PORT", "not-a-port")
	t.Setenv("FALLBACK_PRICE", "not-a-price")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.FallbackPrice.Equal(decimal.NewFromFloat(100.00)))
}

func TestLoad_AlpacaRequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("MARKET_PROVIDER", "alpaca")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("APCA_API_KEY_ID", "test_key")
	t.Setenv("APCA_API_SECRET_KEY", "test_secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderAlpaca, cfg.MarketProvider)
}

func TestLoad_UnknownProviderRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("MARKET_PROVIDER", "robinhood")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NonPositiveFallbackRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("FALLBACK_PRICE", "-1")

	_, err := Load()
	assert.Error(t, err)
}

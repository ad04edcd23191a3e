package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VERDANT_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, "demo", cfg.AlphaVantageAPIKey)
	assert.Equal(t, "demo", cfg.FMPAPIKey)
	assert.Equal(t, "@every 15m", cfg.RefreshSchedule)
	assert.Equal(t, 100000.0, cfg.InitialFundCash)
	assert.True(t, filepath.IsAbs(cfg.DataDir))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VERDANT_DATA_DIR", t.TempDir())
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("FMP_API_KEY", "realkey123")
	t.Setenv("VERDANT_INITIAL_FUND_CASH", "50000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "realkey123", cfg.FMPAPIKey)
	assert.Equal(t, 50000.0, cfg.InitialFundCash)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("VERDANT_DATA_DIR", t.TempDir())

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-port")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-positive initial cash", func(t *testing.T) {
		t.Setenv("VERDANT_INITIAL_FUND_CASH", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}

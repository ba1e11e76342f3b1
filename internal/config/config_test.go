package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BACKEND_BASE_URL", "https://backend.example")
	t.Setenv("API_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.WalletInterval)
	assert.Equal(t, 15*time.Second, cfg.SessionsInterval)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "minehub.db", cfg.StoragePath)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9999")
	t.Setenv("SESSIONS_POLL_INTERVAL", "5s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.SessionsInterval)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "")
	t.Setenv("API_KEY", "k")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND_BASE_URL")

	t.Setenv("BACKEND_BASE_URL", "https://backend.example")
	t.Setenv("API_KEY", "")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoad_BadValues(t *testing.T) {
	setRequired(t)

	t.Setenv("PORT", "not-a-number")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "8080")
	t.Setenv("WALLET_POLL_INTERVAL", "soon")
	_, err = Load()
	assert.Error(t, err)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("BACKEND_BASE_URL", "http://localhost:9000")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultFreshnessWindow, cfg.FreshnessWindow)
	assert.Equal(t, DefaultAutoSyncInterval, cfg.AutoSyncInterval)
	assert.True(t, cfg.AutoSyncEnabled)
	assert.Equal(t, "http://localhost:9000", cfg.BackendBaseURL)
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("FRESHNESS_WINDOW", "45s")
	t.Setenv("AUTO_SYNC_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.FreshnessWindow)
	assert.False(t, cfg.AutoSyncEnabled)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("BACKEND_BASE_URL", "http://localhost:9000")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoadRequiresBackendURL(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("BACKEND_BASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND_BASE_URL")
}

func TestLoadInvalidDuration(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateEnv(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("API_KEY", "test-key")
	t.Setenv("BACKEND_BASE_URL", "http://localhost:9000")

	assert.NoError(t, ValidateEnv())

	t.Setenv("ENV_SCHEMA_VERSION", "0.9")
	assert.ErrorContains(t, ValidateEnv(), "mismatch")
}

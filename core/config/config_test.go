package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "https://fakestoreapi.com", cfg.Upstream.BaseURL)
	assert.Equal(t, 30, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Upstream.MaxRetries)
	assert.Equal(t, 100, cfg.Upstream.RetryBackoffMS)
	assert.Equal(t, 60, cfg.RateLimit.MaxAttempts)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "http://localhost:9999")
	t.Setenv("RATELIMIT_RATE_LIMIT_PER_MINUTE", "2")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.Upstream.BaseURL)
	assert.Equal(t, 2, cfg.RateLimit.MaxAttempts)
}

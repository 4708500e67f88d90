package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.StateBackend)
	assert.Equal(t, "admin@damoang.dev", cfg.Server.AdminEmail)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("ANGPLE_USE_MOCK", "true")
	t.Setenv("ANGPLE_API_URL", "http://localhost:9999/api/v1")
	t.Setenv("PORT", "9100")
	t.Setenv("RATE_LIMIT", "not-a-number")

	cfg := DefaultConfig()
	assert.True(t, cfg.UseMock)
	assert.Equal(t, "http://localhost:9999/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, float64(20), cfg.Server.RateLimit)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.UseMock = true
	cfg.StateBackend = "memory"
	cfg.Server.TokenTTL = "2h"
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, loaded.UseMock)
	assert.Equal(t, "memory", loaded.StateBackend)
	assert.Equal(t, 2*time.Hour, loaded.Server.TokenLifetime())
}

func TestLoadFromRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("use_mock: [unterminated"), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestTokenLifetimeFallback(t *testing.T) {
	assert.Equal(t, 30*24*time.Hour, ServerConfig{TokenTTL: "soon"}.TokenLifetime())
	assert.Equal(t, 30*24*time.Hour, ServerConfig{TokenTTL: "-1h"}.TokenLifetime())
}

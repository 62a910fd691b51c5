package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fleetbattle-console/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load(config.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, config.BackendFile, cfg.SessionBackend)
	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("FBCONSOLE_API_BASE_URL", "https://fleet.example.com/api/")
	t.Setenv("FBCONSOLE_REQUEST_TIMEOUT", "3s")
	t.Setenv("FBCONSOLE_SESSION_BACKEND", "Redis")
	t.Setenv("FBCONSOLE_RATE_LIMIT", "2.5")

	cfg, err := config.Load(config.New())
	require.NoError(t, err)

	assert.Equal(t, "https://fleet.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, config.BackendRedis, cfg.SessionBackend)
	assert.InDelta(t, 2.5, cfg.RateLimit, 0.0001)
}

func TestExplicitValuesWin(t *testing.T) {
	t.Setenv("FBCONSOLE_OUTPUT", "text")
	v := config.New()
	v.Set(config.KeyOutput, "json")

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FBCONSOLE_LISTEN_ADDR=127.0.0.1:9999\n"), 0600))
	t.Setenv("FBCONSOLE_LISTEN_ADDR", "")
	require.NoError(t, os.Unsetenv("FBCONSOLE_LISTEN_ADDR"))

	require.NoError(t, config.LoadDotEnv(path, filepath.Join(dir, "missing.env")))

	cfg, err := config.Load(config.New())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		key   string
		value any
		want  error
	}{
		{config.KeyAPIBaseURL, "localhost:5000", config.ErrInvalidBaseURL},
		{config.KeyAPIBaseURL, "ftp://fleet.example.com", config.ErrInvalidBaseURL},
		{config.KeySessionBackend, "sqlite", config.ErrInvalidBackend},
		{config.KeyOutput, "yaml", config.ErrInvalidOutput},
	}

	for _, tt := range tests {
		v := config.New()
		v.Set(tt.key, tt.value)
		_, err := config.Load(v)
		assert.ErrorIs(t, err, tt.want, "%s=%v", tt.key, tt.value)
	}

	v := config.New()
	v.Set(config.KeyRequestTimeout, "0s")
	_, err := config.Load(v)
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, config.Config{Verbose: true, LogLevel: "error"}.Level())
	assert.Equal(t, slog.LevelError, config.Config{LogLevel: "error"}.Level())
	assert.Equal(t, slog.LevelInfo, config.Config{LogLevel: "INFO"}.Level())
	assert.Equal(t, slog.LevelWarn, config.Config{LogLevel: "chatty"}.Level())
}

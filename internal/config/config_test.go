package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: t.Parallel() is intentionally omitted in this package.
// These tests share process-global environment variables; t.Setenv in
// TestLoad_EnvOverride would race with any concurrent reader.

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "cv-service", cfg.Telemetry.ServiceName)
	assert.Equal(t, "info", cfg.Telemetry.LogLevel)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, "localhost", cfg.Deps.Postgres.Host)
	assert.Equal(t, "nats://localhost:4222", cfg.Deps.NATS.URL)
	assert.Equal(t, 6379, cfg.Deps.Redis.Port)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FIGHTSIGHT_SERVER_PORT", "9000")
	t.Setenv("FIGHTSIGHT_SERVER_HOST", "127.0.0.1")
	t.Setenv("FIGHTSIGHT_DEPS_REDIS_HOST", "cache.internal")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "cache.internal", cfg.Deps.Redis.Host)
}

func TestLoad_FileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 8443\ncors:\n  allowed_origins:\n    - https://app.fightsight.io\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8443, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.fightsight.io"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.AllowAll())
}

func TestLoad_InvalidFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestCORSConfig_AllowAll(t *testing.T) {
	assert.True(t, CORSConfig{AllowedOrigins: []string{"*"}}.AllowAll())
	assert.True(t, CORSConfig{AllowedOrigins: []string{"https://a.example", "*"}}.AllowAll())
	assert.False(t, CORSConfig{AllowedOrigins: []string{"https://a.example"}}.AllowAll())
	assert.False(t, CORSConfig{}.AllowAll())
}

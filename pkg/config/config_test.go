package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/charity-reports-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "./exports", cfg.Export.Dir)
	assert.Equal(t, 7, cfg.Export.RetentionDays)
	assert.Equal(t, "fa", cfg.Locale.Tag)
	assert.Equal(t, 60*time.Second, cfg.HTTP.RequestTimeout)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EXPORT_DIR", "/tmp/out")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "90")
	t.Setenv("REPORT_CACHE_TTL", "2m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.Export.Dir)
	assert.Equal(t, 90*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Redis.TTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_RetencionInvalida(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EXPORT_RETENTION_DAYS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/shop?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		path := writeConfig(t, `
mode: tui
log-level: debug
http-port: "9090"
shutdown-timeout: 3s
store:
  driver: redis
  ttl: 1h
redis:
  host: cache
  port: "6380"
  db: 2
sse:
  heartbeat: 5s
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, ModeTUI, conf.Mode)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, 3*time.Second, conf.ShutdownTimeout)
		assert.Equal(t, StoreRedis, conf.Store.Driver)
		assert.Equal(t, time.Hour, conf.Store.TTL)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 2, conf.Redis.DB)
		assert.Equal(t, 5*time.Second, conf.SSE.Heartbeat)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "7070")
		path := writeConfig(t, "http-port: \"9090\"\n")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Missing file falls back to defaults", func(t *testing.T) {
		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.NoError(t, err)
		assert.Equal(t, ModeWeb, conf.Mode)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, StoreMemory, conf.Store.Driver)
		assert.Equal(t, 24*time.Hour, conf.Store.TTL)
		assert.Equal(t, 15*time.Second, conf.SSE.Heartbeat)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Invalid values", func(t *testing.T) {
		for _, body := range []string{"mode: gui\n", "store:\n  driver: postgres\n"} {
			_, err := Load(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalidConfig, body)
		}
	})

	t.Run("MustLoad panics on invalid config", func(t *testing.T) {
		path := writeConfig(t, "mode: gui\n")

		assert.Panics(t, func() { MustLoad(path) })
	})
}

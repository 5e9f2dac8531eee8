package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksmo/catalog/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.API.Timeout)
		assert.Equal(t, ":8080", cfg.Stub.HTTPServerAddr)
		assert.Equal(t, "catalog-submissions", cfg.Events.Topic)
		assert.False(t, cfg.EventsEnabled())
	})

	t.Run("File", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
api:
  base_url: https://catalog.example.com
  timeout: 3s
events:
  seed_brokers: ["localhost:9092"]
  schema_registry_urls: ["http://localhost:8081"]
  topic: submissions
`)
		cfg, err := config.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, "https://catalog.example.com", cfg.API.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, []string{"localhost:9092"}, cfg.Events.SeedBrokers)
		assert.Equal(t, "submissions", cfg.Events.Topic)
		assert.True(t, cfg.EventsEnabled())
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := writeConfig(t, "sql_db: postgres://localhost\n")
		_, err := config.LoadFile(path)
		require.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
		require.Error(t, err)
	})

	t.Run("EnvOverride", func(t *testing.T) {
		t.Setenv("CATALOG_API_BASE_URL", "http://stub:9000")
		cfg, err := config.LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, "http://stub:9000", cfg.API.BaseURL)
	})
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "flag.yaml", config.ConfigPath("flag.yaml"))

	t.Setenv("CATALOG_CONFIG_FILE", "env.yaml")
	assert.Equal(t, "env.yaml", config.ConfigPath("flag.yaml"))
}

func TestFprint(t *testing.T) {
	cfg, err := config.LoadFile("")
	require.NoError(t, err)

	var buf bytes.Buffer
	cfg.Fprint(&buf)
	assert.Contains(t, buf.String(), `BaseURL="http://localhost:8080"`)
	assert.Contains(t, buf.String(), `Topic="catalog-submissions"`)
}

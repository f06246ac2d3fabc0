package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when config file is missing", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, ":8181", cfg.Server.Addr)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, 7*time.Second, cfg.Dashboard.SourceTimeout)
		assert.Equal(t, 11, cfg.Dashboard.MaxConcurrency)
		assert.Equal(t, time.Minute, cfg.Dashboard.SweepInterval)
		assert.False(t, cfg.AMQP.Enabled)
		assert.Equal(t, 256, cfg.AMQP.QueueSize)
	})

	t.Run("should override defaults from yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "application.yaml")
		content := "db:\n  driver: sqlite\n  path: /tmp/test.db\nupstream:\n  baseurl: https://finance.example.com/api\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
		assert.Equal(t, "https://finance.example.com/api", cfg.Upstream.BaseURL)
		assert.Equal(t, 5432, cfg.Database.Port)
	})

	t.Run("should override file values from environment", func(t *testing.T) {
		t.Setenv("FINBOARD_DB_HOST", "db.internal")
		t.Setenv("FINBOARD_AMQP_ENABLED", "true")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.True(t, cfg.AMQP.Enabled)
	})
}

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avidian/mvc/pkg/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.Equal(t, ":8080", cfg.Server.Address)
	require.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "sqlite3", cfg.Database.Driver)
	require.Equal(t, "storage/database.sqlite", cfg.Database.Name)
	require.Equal(t, "local", cfg.Storage.Driver)
	require.Equal(t, "storage/app", cfg.Storage.Dir)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

// Tests touching the environment cannot run in parallel.
func TestLoad(t *testing.T) {
	t.Run("file with expansion", func(t *testing.T) {
		t.Setenv("BLOG_DB_PASSWORD", "s3cret")
		path := writeFile(t, `
app:
  name: blog
server:
  address: ":9000"
  shutdown_timeout: 5s
database:
  driver: pgsql
  host: db
  name: blog
  username: app
  password: ${BLOG_DB_PASSWORD}
logging:
  level: debug
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "blog", cfg.App.Name)
		require.Equal(t, ":9000", cfg.Server.Address)
		require.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
		require.Equal(t, "pgsql", cfg.Database.Driver)
		require.Equal(t, "s3cret", cfg.Database.Password)
		require.Equal(t, "schema_migrations", cfg.Database.MigrationsTable)
		require.Equal(t, slog.LevelDebug, cfg.LogLevel())
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("MVC_SERVER_ADDRESS", ":7000")
		t.Setenv("MVC_DB_PORT", "6543")
		t.Setenv("MVC_INPUT_SANITIZE", "yes")
		t.Setenv("MVC_METRICS_ENABLED", "true")
		path := writeFile(t, "server:\n  address: \":9000\"\n")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, ":7000", cfg.Server.Address)
		require.Equal(t, 6543, cfg.Database.Port)
		require.True(t, cfg.Input.Sanitize)
		require.True(t, cfg.Metrics.Enabled)
	})

	t.Run("no file", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, "mvc", cfg.App.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, config.ErrRead)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "server: [\n"))
		require.ErrorIs(t, err, config.ErrParse)
	})

	t.Run("validation", func(t *testing.T) {
		for name, content := range map[string]string{
			"driver":  "database:\n  driver: oracle\n  name: x\n",
			"name":    "database:\n  driver: pgsql\n",
			"storage": "storage:\n  driver: ftp\n",
			"s3":      "storage:\n  driver: s3\n",
			"level":   "logging:\n  level: loud\n",
			"metrics": "metrics:\n  path: metrics\n",
		} {
			_, err := config.Load(writeFile(t, content))
			require.ErrorIs(t, err, config.ErrInvalid, name)
		}
	})
}

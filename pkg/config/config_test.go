package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zenithgo/zenith/pkg/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(
		config.WithFiles(),
		config.WithEnvironment(map[string]string{"DATABASE_CONN_URL": "postgres://localhost/app"}),
	)
	require.NoError(t, err)

	require.Equal(t, "zenith", cfg.App.Name)
	require.Equal(t, ":8080", cfg.App.Addr)
	require.False(t, cfg.App.Debug)
	require.False(t, cfg.App.IsProduction())
	require.Equal(t, "postgres://localhost/app", cfg.DB.ConnectionString)
	require.Equal(t, int32(10), cfg.DB.MaxOpenConns)
	require.Equal(t, time.Minute, cfg.DB.HealthCheckPeriod)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.Redis.Enabled())
}

func TestLoad_DotenvFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := writeFile(t, dir, ".env", "APP_NAME=shop\nAPP_DEBUG=true\nDATABASE_CONN_URL=postgres://file/db\nLOG_LEVEL=debug\n")
	local := writeFile(t, dir, ".env.local", "APP_NAME=shop-local\n")

	cfg, err := config.Load(
		config.WithFiles(base, local, filepath.Join(dir, "missing.env")),
		config.WithEnvironment(map[string]string{"APP_ENV": "production", "LOG_LEVEL": "warn"}),
	)
	require.NoError(t, err)

	require.Equal(t, "shop-local", cfg.App.Name)
	require.True(t, cfg.App.Debug)
	require.True(t, cfg.App.IsProduction())
	require.Equal(t, "postgres://file/db", cfg.DB.ConnectionString)
	require.Equal(t, "warn", cfg.Log.Level, "environment overrides files")
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(config.WithFiles(), config.WithEnvironment(map[string]string{}))
		require.ErrorIs(t, err, config.ErrParse)
	})

	t.Run("bad value", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(config.WithFiles(), config.WithEnvironment(map[string]string{
			"DATABASE_CONN_URL": "postgres://x",
			"APP_DEBUG":         "maybe",
		}))
		require.ErrorIs(t, err, config.ErrParse)
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), ".env", "this is not dotenv\n")
		_, err := config.Load(config.WithFiles(path), config.WithEnvironment(map[string]string{}))
		require.ErrorIs(t, err, config.ErrReadFile)
	})
}

func TestLoadAs(t *testing.T) {
	t.Parallel()

	type appConfig struct {
		config.App
		StripeKey string `env:"STRIPE_KEY,required"`
	}

	cfg, err := config.LoadAs[appConfig](
		config.WithFiles(),
		config.WithEnvironment(map[string]string{"STRIPE_KEY": "sk_test", "APP_NAME": "billing"}),
	)
	require.NoError(t, err)
	require.Equal(t, "sk_test", cfg.StripeKey)
	require.Equal(t, "billing", cfg.Name)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Server.ListenAddr)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, 400, cfg.Server.ValidationErrorStatus)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("VALIDATION_ERROR_STATUS", "500")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.ListenAddr)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 500, cfg.Server.ValidationErrorStatus)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: "7000"
database:
  driver: mysql
  dsn: root@tcp(localhost:3306)/projects
  max_open_conns: 20
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.ListenAddr)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadRejectsBadInteger(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "ten")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnusableServerSettings(t *testing.T) {
	t.Run("gin mode", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("GIN_MODE", "prod")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gin_mode")
	})

	t.Run("metrics path", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("METRICS_PATH", "metrics")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics path")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*AppConfig) {}},
		{name: "unknown driver", mutate: func(c *AppConfig) { c.Database.Driver = "oracle" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *AppConfig) { c.Database.Driver = DriverPostgres }, wantErr: true},
		{name: "postgres with dsn", mutate: func(c *AppConfig) {
			c.Database.Driver = DriverPostgres
			c.Database.DSN = "postgres://localhost/projects"
		}},
		{name: "zero pool", mutate: func(c *AppConfig) { c.Database.MaxOpenConns = 0 }, wantErr: true},
		{name: "unprocessable entity", mutate: func(c *AppConfig) { c.Server.ValidationErrorStatus = 422 }},
		{name: "teapot", mutate: func(c *AppConfig) { c.Server.ValidationErrorStatus = 418 }, wantErr: true},
		{name: "debug mode", mutate: func(c *AppConfig) { c.Server.GinMode = "debug" }},
		{name: "test mode", mutate: func(c *AppConfig) { c.Server.GinMode = "test" }},
		{name: "unknown gin mode", mutate: func(c *AppConfig) { c.Server.GinMode = "prod" }, wantErr: true},
		{name: "empty gin mode", mutate: func(c *AppConfig) { c.Server.GinMode = "" }, wantErr: true},
		{name: "custom metrics path", mutate: func(c *AppConfig) { c.Metrics.Path = "/internal/metrics" }},
		{name: "metrics path without slash", mutate: func(c *AppConfig) { c.Metrics.Path = "metrics" }, wantErr: true},
		{name: "metrics path root", mutate: func(c *AppConfig) { c.Metrics.Path = "/" }, wantErr: true},
		{name: "metrics path wildcard", mutate: func(c *AppConfig) { c.Metrics.Path = "/stats/:name" }, wantErr: true},
		{name: "metrics path on list route", mutate: func(c *AppConfig) { c.Metrics.Path = "/readPage" }, wantErr: true},
		{name: "metrics path under read route", mutate: func(c *AppConfig) { c.Metrics.Path = "/readPage/metrics" }, wantErr: true},
		{name: "metrics path on health route", mutate: func(c *AppConfig) { c.Metrics.Path = "/healthz" }, wantErr: true},
		{name: "similar prefix is fine", mutate: func(c *AppConfig) { c.Metrics.Path = "/pingdom" }},
		{name: "metrics disabled ignores path", mutate: func(c *AppConfig) {
			c.Metrics.Enabled = false
			c.Metrics.Path = "metrics"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaphaCalixto/garantia-tech-flow/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("JWT_SECRET", "abc")
	t.Setenv("DB_AUTO_MIGRATE", "0")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "abc", cfg.JWT.Secret)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_Validaciones(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("DB_MIN_CONNS", "20")
	_, err := config.Load()
	assert.ErrorContains(t, err, "DB_MAX_CONNS")

	t.Setenv("DB_MIN_CONNS", "1")
	t.Setenv("APP_ENV", "production")
	_, err = config.Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cr3t")
	_, err = config.Load()
	assert.NoError(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "garantia", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/garantia?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}}))

	assert.Equal(t, "development", cfg.Environment.Name)
	assert.False(t, cfg.Environment.IsProduction())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Address())
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestPrefixedOverrides(t *testing.T) {
	cfg := &Config{}
	err := env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{
		"ENVIRONMENT":          "production",
		"HTTP_PORT":            "9090",
		"DB_DRIVER":            "postgres",
		"DB_URL":               "host=db user=store dbname=store",
		"DB_CONN_MAX_LIFETIME": "5m",
		"DB_SEED_CATALOG":      "true",
		"METRICS_ENABLED":      "false",
	}})
	require.NoError(t, err)

	assert.True(t, cfg.Environment.IsProduction())
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Address())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Database.SeedCatalog)
	assert.False(t, cfg.Metrics.Enabled)
}

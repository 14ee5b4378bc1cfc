package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/overload/internal/config"
	"github.com/2beens/overload/internal/overload/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToml = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
log_to_stdout = true
prometheus_metrics_port = "2112"
store_backend = "memory"
allowed_origins = ["http://localhost:3000"]
default_strategy = "double-progression"

[development.engine]
plateau_sessions = 5
rounding_step = 2.5
increments = { isolation = 2.0 }

[development.engine.weekly_targets]
chest = [12, 20]

[production]
port = 8080
store_backend = "postgres"
postgres_host = "db"
postgres_port = "5432"
postgres_db_name = "overload"
record_rate_limit_per_min = 30
`

func TestParse_Development(t *testing.T) {
	cfg, err := config.Parse("dev", testToml)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Equal(t, config.StoreMemory, cfg.StoreBackend)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "double-progression", cfg.DefaultStrategy)

	progressionCfg := cfg.Engine.Progression()
	assert.Equal(t, 5, progressionCfg.PlateauSessions)
	assert.Equal(t, 2.5, progressionCfg.RoundingStep)
	// untouched keys keep their defaults
	assert.Equal(t, 0.02, progressionCfg.PlateauThreshold)
	assert.Equal(t, 0.10, progressionCfg.DeloadCut)

	c := catalog.New(cfg.Engine.CatalogOptions()...)
	assert.Equal(t, catalog.TargetRange{Low: 12, High: 20}, c.Target("chest"))
	assert.Equal(t, 2.0, c.Increment(catalog.Isolation))
	assert.Equal(t, 2.5, c.Increment(catalog.CompoundUpper))
}

func TestParse_ProductionDefaults(t *testing.T) {
	cfg, err := config.Parse("production", testToml)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.StorePostgres, cfg.StoreBackend)
	assert.Equal(t, 30, cfg.RecordRateLimitPerMin)
	require.NotNil(t, cfg.Engine)
	assert.Empty(t, cfg.Engine.CatalogOptions())
}

func TestParse_Errors(t *testing.T) {
	_, err := config.Parse("staging", testToml)
	assert.EqualError(t, err, "unknown env: staging")

	_, err = config.Parse("testing", testToml)
	assert.EqualError(t, err, "no config for env: testing")

	_, err = config.Parse("dev", "[development\nport = 1")
	assert.Error(t, err)

	for name, content := range map[string]string{
		"store":          "[development]\nstore_backend = \"mongo\"",
		"rate limit":     "[development]\nrecord_rate_limit_per_min = -1",
		"target":         "[development.engine.weekly_targets]\nchest = [20, 12]",
		"target length":  "[development.engine.weekly_targets]\nchest = [12]",
		"category":       "[development.engine]\nincrements = { cardio = 1.0 }",
		"progression":    "[development.engine]\nrpe_easy = 9.5",
		"plateau window": "[development.engine]\nplateau_sessions = 2",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse("dev", content)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testToml), 0o600))

	cfg, err := config.Load("prod", path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "overload", cfg.PostgresDBName)

	_, err = config.Load("prod", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

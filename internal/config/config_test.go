package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Output.Root)
	assert.False(t, cfg.Output.XLSX)
	assert.Equal(t, "", cfg.Store.Driver)
	assert.Equal(t, "https://www.whoscored.com", cfg.Fetch.BaseURL)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.InDelta(t, 0.5, cfg.Fetch.RequestsPerSecond, 0.001)
	assert.Equal(t, "team_identity.csv", cfg.Identity.Path)
	assert.Equal(t, 3, cfg.Batch.MaxConcurrentMatches)
	assert.Equal(t, 8, cfg.Batch.CooldownEvery)
	assert.Equal(t, 20, cfg.Batch.CooldownSecs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
output:
  root: /var/lib/matchcenter
  xlsx: true
store:
  driver: sqlite
  database_url: matches.db
  pool:
    max_conns: 4
    schema: match_data
fetch:
  requests_per_second: 2
batch:
  max_concurrent_matches: 1
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/matchcenter", cfg.Output.Root)
	assert.True(t, cfg.Output.XLSX)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "matches.db", cfg.Store.DatabaseURL)
	assert.Equal(t, int32(4), cfg.Store.Pool.MaxConns)
	assert.Equal(t, "match_data", cfg.Store.Pool.Schema)
	assert.InDelta(t, 2.0, cfg.Fetch.RequestsPerSecond, 0.001)
	assert.Equal(t, 1, cfg.Batch.MaxConcurrentMatches)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MATCHCENTER_STORE_DRIVER", "postgres")
	t.Setenv("MATCHCENTER_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope"}))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "linkstats", cfg.AppName)
	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, LogLevelInfo, cfg.LogLevel)
	assert.Equal(t, FormatJSON, cfg.OutputFormat)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 20, cfg.LogsMaxSizeInMb)
	assert.False(t, cfg.Enrich)
	assert.Empty(t, cfg.GeoDBPath)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("LINKSTATS_ENV", Test)
	t.Setenv("LINKSTATS_OUTPUT_FORMAT", FormatYAML)
	t.Setenv("LINKSTATS_WORKERS", "9")
	t.Setenv("LINKSTATS_ENRICH", "true")
	t.Setenv("LINKSTATS_GEO_DB_PATH", "/var/lib/geo/GeoLite2-Country.mmdb")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.IsTest())
	assert.Equal(t, FormatYAML, cfg.OutputFormat)
	assert.Equal(t, 9, cfg.Workers)
	assert.True(t, cfg.Enrich)
	assert.Equal(t, "/var/lib/geo/GeoLite2-Country.mmdb", cfg.GeoDBPath)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: production\nloglevel: warn\nworkers: 2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, LogLevelWarn, cfg.LogLevel)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadEnvironmentBeatsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0o600))
	t.Setenv("LINKSTATS_WORKERS", "6")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Workers)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "environment", key: "LINKSTATS_ENV", value: "staging"},
		{name: "log level", key: "LINKSTATS_LOG_LEVEL", value: "trace"},
		{name: "output format", key: "LINKSTATS_OUTPUT_FORMAT", value: "csv"},
		{name: "workers", key: "LINKSTATS_WORKERS", value: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load("")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestGetConfigIsCached(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first := GetConfig()
	second := GetConfig()
	assert.Same(t, first, second)
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points Load at an empty home so a real ~/.trailog/config.yaml
// can't leak into the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TRAILOG_CONFIG", "")
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trailog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "workouts", cfg.StorageKey)
	assert.Equal(t, 13, cfg.Zoom)
	assert.Equal(t, time.Second, cfg.FormSettle)
	assert.False(t, cfg.HasHome)
	assert.True(t, strings.HasSuffix(cfg.DBPath, "trailog.db"))
}

func TestLoad_Overrides(t *testing.T) {
	isolate(t)
	t.Setenv("TRAILOG_DB", "/tmp/t.db")
	t.Setenv("TRAILOG_STORAGE_KEY", "runs")
	t.Setenv("TRAILOG_ZOOM", "15")
	t.Setenv("TRAILOG_FORM_SETTLE_MS", "250")
	t.Setenv("TRAILOG_LOG_EVENTS", "true")
	t.Setenv("TRAILOG_HOME_LAT", "39.7392")
	t.Setenv("TRAILOG_HOME_LNG", "-104.9903")

	cfg := Load()

	assert.Equal(t, "/tmp/t.db", cfg.DBPath)
	assert.Equal(t, "runs", cfg.StorageKey)
	assert.Equal(t, 15, cfg.Zoom)
	assert.Equal(t, 250*time.Millisecond, cfg.FormSettle)
	assert.True(t, cfg.LogEvents)
	assert.True(t, cfg.HasHome)
	assert.Equal(t, domain.Coords{Lat: 39.7392, Lng: -104.9903}, cfg.Home)
}

func TestLoad_InvalidValuesIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("TRAILOG_ZOOM", "99")
	t.Setenv("TRAILOG_FORM_SETTLE_MS", "soon")
	t.Setenv("TRAILOG_HOME_LAT", "120")
	t.Setenv("TRAILOG_HOME_LNG", "10")

	cfg := Load()

	assert.Equal(t, 13, cfg.Zoom)
	assert.Equal(t, time.Second, cfg.FormSettle)
	assert.False(t, cfg.HasHome)
}

func TestLoad_HomeNeedsBothCoordinates(t *testing.T) {
	isolate(t)
	t.Setenv("TRAILOG_HOME_LAT", "10")
	t.Setenv("TRAILOG_HOME_LNG", "")

	assert.False(t, Load().HasHome)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	t.Setenv("TRAILOG_CONFIG", writeConfigFile(t, `
storage_key: rides
zoom: 11
home_lat: 51.5074
home_lng: -0.1278
`))

	cfg := Load()

	assert.Equal(t, "rides", cfg.StorageKey)
	assert.Equal(t, 11, cfg.Zoom)
	assert.True(t, cfg.HasHome)
	assert.Equal(t, domain.Coords{Lat: 51.5074, Lng: -0.1278}, cfg.Home)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	isolate(t)
	t.Setenv("TRAILOG_CONFIG", writeConfigFile(t, "zoom: 11\nform_settle_ms: 0\n"))
	t.Setenv("TRAILOG_ZOOM", "16")

	cfg := Load()

	assert.Equal(t, 16, cfg.Zoom)
	assert.Equal(t, time.Duration(0), cfg.FormSettle)
}

func TestLoad_DefaultConfigFileUnderHome(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".trailog"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".trailog", "config.yaml"), []byte("log_events: true\n"), 0o600))

	assert.True(t, Load().LogEvents)
}

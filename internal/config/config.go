package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/spf13/viper"
)

// Config holds runtime settings for the trailog binary.
type Config struct {
	DBPath     string
	StorageKey string
	Zoom       int
	FormSettle time.Duration
	LogEvents  bool

	// Home is the position reported by the location provider. HasHome is
	// false when no position is configured, which makes lookups fail.
	Home    domain.Coords
	HasHome bool
}

// DefaultConfig returns a Config with sensible defaults. No home position
// is set by default.
func DefaultConfig() Config {
	return Config{
		DBPath:     filepath.Join(dataDir(), "trailog.db"),
		StorageKey: "workouts",
		Zoom:       13,
		FormSettle: time.Second,
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trailog"
	}
	return filepath.Join(home, ".trailog")
}

// Load reads configuration from an optional config.yaml and environment
// variables, falling back to defaults for any unset or invalid values.
// TRAILOG_* variables win over the file; TRAILOG_CONFIG names the file
// explicitly, otherwise ~/.trailog/config.yaml is used if present.
func Load() Config {
	cfg := DefaultConfig()

	v := viper.New()
	if path := os.Getenv("TRAILOG_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir())
	}
	_ = v.ReadInConfig() // OK if missing

	// TRAILOG_STORAGE_KEY → storage_key
	v.SetEnvPrefix("TRAILOG")
	v.AutomaticEnv()

	if s := v.GetString("db"); s != "" {
		cfg.DBPath = s
	}
	if s := v.GetString("storage_key"); s != "" {
		cfg.StorageKey = s
	}
	if n, err := strconv.Atoi(v.GetString("zoom")); err == nil && n >= 1 && n <= 18 {
		cfg.Zoom = n
	}
	if n, err := strconv.Atoi(v.GetString("form_settle_ms")); err == nil && n >= 0 {
		cfg.FormSettle = time.Duration(n) * time.Millisecond
	}
	if b, err := strconv.ParseBool(v.GetString("log_events")); err == nil {
		cfg.LogEvents = b
	}

	lat, latErr := strconv.ParseFloat(v.GetString("home_lat"), 64)
	lng, lngErr := strconv.ParseFloat(v.GetString("home_lng"), 64)
	if latErr == nil && lngErr == nil && domain.ValidateCoordinates(lat, lng) == nil {
		cfg.Home = domain.Coords{Lat: lat, Lng: lng}
		cfg.HasHome = true
	}

	return cfg
}

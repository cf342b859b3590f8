package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the dressup client.
//
// Fields:
//   - Backend: storage backend kind, "embedded" or "remote".
//   - DatabasePath: path to the local SQLite database file.
//   - RelayBaseURL: base URL of the generation relay service.
//   - GenerationTimeout: how long a single generation request may run.
//   - BackendLatency: base unit of the embedded backend's simulated delay.
//
// Units: GenerationTimeout and BackendLatency are time.Duration values.
type Config struct {
	Backend           string
	DatabasePath      string
	RelayBaseURL      string
	GenerationTimeout time.Duration
	BackendLatency    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = "embedded"
	c.DatabasePath = defaultDatabasePath()
	c.RelayBaseURL = "http://127.0.0.1:3001"
	c.GenerationTimeout = 60 * time.Second
	c.BackendLatency = 100 * time.Millisecond
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dressup.db"
	}
	return filepath.Join(home, ".dressup", "dressup.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

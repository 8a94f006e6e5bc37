package config

import "time"

// Config holds runtime settings for the FuelTrack CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, without a trailing slash.
//   - DatabaseFile: path of the local SQLite file holding the session store.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - LogLevel: minimum slog level (debug, info, warn, error).
//
// Units: OnlineCheckInterval is a time.Duration (e.g., 3*time.Second).
type Config struct {
	APIBaseURL          string
	DatabaseFile        string
	OnlineCheckInterval time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.DatabaseFile = "fueltrack.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present) and command-line flags
// (if present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

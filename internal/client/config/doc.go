// Package config loads runtime configuration for the FuelTrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the backend API
//	-d string   path of the local session database file
//	-i int      online status check interval (seconds)
//	-l string   minimum log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "database_file": "fueltrack.db",
//	  "online_check_interval": "3s",
//	  "log_level": "info"
//	}
//
// Primary API
//
//   - type Config                     — holds the API address, database path, probe interval and log level
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables. A .env
// file in the working directory is loaded first, without overriding
// variables already set in the process environment.
//
// Recognized variables:
//
//	FUELTRACK_API_URL        base URL of the backend API
//	FUELTRACK_DB_FILE        path of the local session database
//	FUELTRACK_CHECK_INTERVAL online check interval in seconds
//	FUELTRACK_LOG_LEVEL      minimum log level
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("FUELTRACK_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("FUELTRACK_DB_FILE"); v != "" {
		cfg.DatabaseFile = v
	}
	if v := os.Getenv("FUELTRACK_CHECK_INTERVAL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.OnlineCheckInterval = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("FUELTRACK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

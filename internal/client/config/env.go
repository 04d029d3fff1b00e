package config

import (
	"github.com/dmitrijs2005/fittrack/internal/envx"
)

// Environment keys.
const (
	EnvAPIURL          = "FITTRACK_API_URL"
	EnvDB              = "FITTRACK_DB"
	EnvRefreshInterval = "FITTRACK_REFRESH_INTERVAL"
	EnvRequestTimeout  = "FITTRACK_REQUEST_TIMEOUT"
	EnvRateLimit       = "FITTRACK_RATE_LIMIT"
	EnvJWTSecret       = "FITTRACK_JWT_SECRET"
	EnvLogLevel        = "FITTRACK_LOG_LEVEL"
)

// dotEnvFile is read before the environment; a missing file is fine.
var dotEnvFile = ".env"

// parseEnv overlays Config with FITTRACK_* variables. Malformed values keep
// the previous setting. A broken .env file panics like a broken JSON file.
func parseEnv(cfg *Config) {
	if err := envx.LoadDotEnv(dotEnvFile); err != nil {
		panic(err)
	}

	cfg.APIBaseURL = envx.GetString(EnvAPIURL, cfg.APIBaseURL)
	cfg.DBPath = envx.GetString(EnvDB, cfg.DBPath)
	cfg.WorkoutRefreshInterval = envx.GetDuration(EnvRefreshInterval, cfg.WorkoutRefreshInterval)
	cfg.RequestTimeout = envx.GetDuration(EnvRequestTimeout, cfg.RequestTimeout)
	cfg.RateLimit = envx.GetFloat(EnvRateLimit, cfg.RateLimit)
	cfg.JWTSecret = envx.GetString(EnvJWTSecret, cfg.JWTSecret)
	cfg.LogLevel = envx.GetString(EnvLogLevel, cfg.LogLevel)
}

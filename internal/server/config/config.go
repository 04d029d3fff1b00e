// Package config handles configuration for the reference API server,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// Config holds runtime settings for the FitTrack API server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects in-memory storage.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenTTL: lifetime of issued tokens.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ListenAddr  string
	DatabaseDSN string
	SecretKey   string
	TokenTTL    time.Duration
	LogLevel    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":3000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenTTL = 24 * time.Hour
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

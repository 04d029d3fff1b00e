package config

import "time"

// Config holds runtime settings for the FitTrack CLI.
//
// Fields:
//   - APIBaseURL: root URL of the FitTrack REST API.
//   - DBPath: SQLite file holding the saved session.
//   - WorkoutRefreshInterval: period of the background workout refresh.
//   - RequestTimeout: per-request HTTP timeout.
//   - RateLimit: outgoing requests per second (0 disables throttling).
//   - JWTSecret: HS256 secret used to verify tokens locally; optional.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL             string
	DBPath                 string
	WorkoutRefreshInterval time.Duration
	RequestTimeout         time.Duration
	RateLimit              float64
	JWTSecret              string
	LogLevel               string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.DBPath = "fittrack.db"
	c.WorkoutRefreshInterval = 60 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.RateLimit = 10
	c.JWTSecret = ""
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (including a .env file) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

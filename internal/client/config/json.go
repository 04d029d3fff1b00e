package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fittrack/internal/flagx"
	"github.com/dmitrijs2005/fittrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration, so they may be strings like "30s" or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL             string         `json:"api_base_url"`
	DBPath                 string         `json:"db_path"`
	WorkoutRefreshInterval timex.Duration `json:"workout_refresh_interval"`
	RequestTimeout         timex.Duration `json:"request_timeout"`
	RateLimit              *float64       `json:"rate_limit"`
	JWTSecret              string         `json:"jwt_secret"`
	LogLevel               string         `json:"log_level"`
}

// parseJson overlays Config with the values present in the JSON file given by
// -c or -config. Keys missing from the file keep their previous value. Read
// or decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.WorkoutRefreshInterval.Duration > 0 {
		cfg.WorkoutRefreshInterval = jc.WorkoutRefreshInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.JWTSecret != "" {
		cfg.JWTSecret = jc.JWTSecret
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}

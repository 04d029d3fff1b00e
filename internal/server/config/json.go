package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fittrack/internal/flagx"
	"github.com/dmitrijs2005/fittrack/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration file.
// TokenTTL accepts "24h" style strings or integer nanoseconds.
type JsonConfig struct {
	ListenAddr  string         `json:"listen_addr"`
	DatabaseDSN string         `json:"database_dsn"`
	SecretKey   string         `json:"secret_key"`
	TokenTTL    timex.Duration `json:"token_ttl"`
	LogLevel    string         `json:"log_level"`
}

// parseJson loads the file named by -c or -config, if any. Missing keys keep
// the previous value; unreadable or invalid files panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenTTL.Duration > 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}

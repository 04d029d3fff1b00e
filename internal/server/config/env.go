package config

import "github.com/dmitrijs2005/fittrack/internal/envx"

const (
	EnvListenAddr  = "FITTRACK_LISTEN_ADDR"
	EnvDatabaseDSN = "FITTRACK_DATABASE_DSN"
	EnvSecretKey   = "FITTRACK_SECRET_KEY"
	EnvTokenTTL    = "FITTRACK_TOKEN_TTL"
	EnvLogLevel    = "FITTRACK_LOG_LEVEL"
)

var dotEnvFile = ".env"

func parseEnv(cfg *Config) {
	if err := envx.LoadDotEnv(dotEnvFile); err != nil {
		panic(err)
	}

	cfg.ListenAddr = envx.GetString(EnvListenAddr, cfg.ListenAddr)
	cfg.DatabaseDSN = envx.GetString(EnvDatabaseDSN, cfg.DatabaseDSN)
	cfg.SecretKey = envx.GetString(EnvSecretKey, cfg.SecretKey)
	cfg.TokenTTL = envx.GetDuration(EnvTokenTTL, cfg.TokenTTL)
	cfg.LogLevel = envx.GetString(EnvLogLevel, cfg.LogLevel)
}

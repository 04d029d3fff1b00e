// Package config loads runtime configuration for the FitTrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables FITTRACK_*, seeded from ./.env when present.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:3000",
//	  "db_path": "fittrack.db",
//	  "workout_refresh_interval": "60s",
//	  "request_timeout": "10s",
//	  "rate_limit": 10,
//	  "jwt_secret": "",
//	  "log_level": "warn"
//	}
package config

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string    API base URL
//	-d string    path of the local database
//	-i int       workout refresh interval in seconds
//	-t duration  request timeout, e.g. 5s
//	-r float     request rate limit per second
//	-l string    log level
//
// Only the flags listed above are taken from os.Args (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-t", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local database")
	refresh := fs.Int("i", int(cfg.WorkoutRefreshInterval.Seconds()), "workout refresh interval (in seconds)")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.Float64Var(&cfg.RateLimit, "r", cfg.RateLimit, "request rate limit per second")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.WorkoutRefreshInterval = time.Duration(*refresh) * time.Second
}

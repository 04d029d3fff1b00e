// Command fittrack-api is the reference REST API for the FitTrack client.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/dmitrijs2005/fittrack/internal/server"
	"github.com/dmitrijs2005/fittrack/internal/server/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		logging.New(os.Stderr, "json", "error").Error(context.Background(), "fittrack-api failed to start", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	app.Run(ctx)
	return nil
}

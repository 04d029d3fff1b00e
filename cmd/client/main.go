package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fittrack/internal/client/cli"
	"github.com/dmitrijs2005/fittrack/internal/client/config"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, "text", cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// The REPL blocks on stdin, so a signal stops the stores and exits
	// instead of waiting for the next line.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
		app.Close()
		os.Exit(130)
	}()

	app.Run(ctx)

}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/i474232898/station-observations/internal/config"
	"github.com/i474232898/station-observations/internal/console"
	"github.com/i474232898/station-observations/internal/logging"
)

func main() {
	log := logging.New(os.Stderr, "dev", 0, "observation-console")

	cfg, err := config.LoadConsole()
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := console.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.APIURL, cfg.AverageTemperaturePath)
	prompter := console.NewPrompter(client, cfg.APIURL, cfg.DefaultStationID, os.Stdin, os.Stdout)

	if err := prompter.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("console stopped", "err", err)
		os.Exit(1)
	}
}

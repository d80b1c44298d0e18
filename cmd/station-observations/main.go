package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	httpapi "github.com/i474232898/station-observations/internal/api/http"
	"github.com/i474232898/station-observations/internal/config"
	"github.com/i474232898/station-observations/internal/logging"
	"github.com/i474232898/station-observations/internal/metrics"
	"github.com/i474232898/station-observations/internal/scheduler"
	"github.com/i474232898/station-observations/internal/store"
	"github.com/i474232898/station-observations/internal/weather"
	"github.com/i474232898/station-observations/internal/weather/providers"
)

const appName = "station-observations"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "prod", 0, appName).Error("failed to load config", "err", err)
		os.Exit(1)
	}

	log := logging.New(os.Stdout, cfg.AppEnv, cfg.LogLevel, appName)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	bom, err := providers.NewBOMProvider(httpClient, cfg.BOMBaseURL, cfg.BOMUserAgent)
	if err != nil {
		log.Error("failed to create bom provider", "err", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	if err != nil {
		log.Error("failed to register metrics", "err", err)
		os.Exit(1)
	}

	// Records are only reused when a TTL is configured.
	var recordStore weather.Store
	if cfg.CacheTTL > 0 {
		recordStore = store.NewMemoryStore(cfg.CacheTTL)
	}

	service := weather.NewService(bom, recordStore, weather.Options{
		RelativePath:     cfg.BOMRelativePath,
		DefaultStationID: cfg.DefaultStationID,
	}, log, m)

	// Scheduler that periodically refreshes the warm-up stations.
	sched := scheduler.New(cfg.WarmStations, cfg.FetchInterval, service, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "err", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := httpapi.NewApp(appName)

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpapi.RegisterRoutes(app, service, log)

	go func() {
		log.Info("listening", "port", cfg.Port, "default_station_id", cfg.DefaultStationID)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "err", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "err", err)
	}
}

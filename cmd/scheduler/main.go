// The scheduler binary runs recurrence catch-up on its own, for
// deployments that keep template processing out of the API server
// (set SCHEDULER_ENABLED=false there).
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/homeshare/internal/config"
	"github.com/mmynk/homeshare/internal/events"
	"github.com/mmynk/homeshare/internal/schedule"
	"github.com/mmynk/homeshare/internal/service"
	"github.com/mmynk/homeshare/internal/storage/sqlite"
	"github.com/mmynk/homeshare/pkg/logging"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logging.Setup()
	slog.Info("Starting scheduler")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	var eventsClient *events.Client
	if cfg.AMQPURL != "" {
		eventsClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
			eventsClient = nil
		} else {
			defer eventsClient.Close()
		}
	}

	recurSvc := service.NewRecurrenceService(store, eventsClient)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Scheduler configured",
		"interval", cfg.SchedulerInterval,
		"sqlite_db", cfg.SQLiteDBPath,
	)

	runOnce := func() {
		today := time.Now().Format(schedule.DayLayout)
		generated, err := recurSvc.ProcessDue(ctx, today)
		if err != nil {
			slog.Error("Recurrence processing failed", "error", err)
			return
		}
		slog.Info("Recurrence processing complete", "generated", generated, "today", today)
	}

	// Catch up immediately on startup.
	runOnce()

	ticker := time.NewTicker(cfg.SchedulerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler shutdown complete")
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

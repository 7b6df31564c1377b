package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/homeshare/internal/auth"
	"github.com/mmynk/homeshare/internal/config"
	"github.com/mmynk/homeshare/internal/events"
	"github.com/mmynk/homeshare/internal/httpapi"
	"github.com/mmynk/homeshare/internal/schedule"
	"github.com/mmynk/homeshare/internal/service"
	"github.com/mmynk/homeshare/internal/storage/sqlite"
	"github.com/mmynk/homeshare/pkg/logging"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.SQLiteDBPath)

	var eventsClient *events.Client
	if cfg.AMQPURL != "" {
		eventsClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
			eventsClient = nil
		} else {
			defer eventsClient.Close()
			slog.Info("AMQP client initialized", "exchange", cfg.AMQPExchange)
		}
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	authSvc := service.NewAuthService(authenticator, jwtManager)
	expenseSvc := service.NewExpenseService(store)
	balanceSvc := service.NewBalanceService(store)
	recurSvc := service.NewRecurrenceService(store, eventsClient)

	server := httpapi.New(store, authSvc, expenseSvc, balanceSvc, recurSvc, jwtManager, slog.Default())

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server starting", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if cfg.SchedulerEnabled {
		g.Go(func() error {
			runScheduler(ctx, recurSvc, cfg.SchedulerInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server shutdown complete")
}

// runScheduler periodically catches up recurring templates until the
// context is cancelled. One pass runs immediately on startup so missed
// occurrences are generated without waiting a full interval.
func runScheduler(ctx context.Context, recurSvc *service.RecurrenceService, interval time.Duration) {
	slog.Info("Scheduler started", "interval", interval)

	runOnce := func() {
		today := time.Now().Format(schedule.DayLayout)
		generated, err := recurSvc.ProcessDue(ctx, today)
		if err != nil {
			slog.Error("Recurrence processing failed", "error", err)
			return
		}
		if generated > 0 {
			slog.Info("Recurrence processing complete", "generated", generated)
		}
	}

	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler stopped")
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

// Copyright (c) 2026 AtharHuda. All rights reserved.

// Command api is the entry point for the AtharHuda HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the snapshot store (sqlite by default; postgres or memory by config).
//  4. Connect to Redis when configured (Quran response cache).
//  5. Wire domain services and HTTP handlers.
//  6. Arm the daily reminder scheduler.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/atharhuda/atharhuda/internal/api"
	"github.com/atharhuda/atharhuda/internal/core/adhkar"
	"github.com/atharhuda/atharhuda/internal/core/khatma"
	"github.com/atharhuda/atharhuda/internal/platform/config"
	"github.com/atharhuda/atharhuda/internal/platform/constants"
	"github.com/atharhuda/atharhuda/internal/platform/migration"
	pgstore "github.com/atharhuda/atharhuda/internal/platform/postgres"
	redisstore "github.com/atharhuda/atharhuda/internal/platform/redis"
	"github.com/atharhuda/atharhuda/internal/platform/storage"
	"github.com/atharhuda/atharhuda/internal/quran"
	"github.com/atharhuda/atharhuda/internal/reminder"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[AtharHuda] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Snapshot Store ─────────────────────────────────────────────────
	store, checkStorage := openStore(startupCtx, cfg, log)
	defer func() {
		log.Info("closing snapshot store")
		if cerr := store.Close(); cerr != nil {
			log.Error("store close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Redis (optional, Quran cache) ──────────────────────────────────
	var quranCache quran.Cache = quran.NewMemoryCache()
	var checkCache func() error
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		quranCache = quran.NewRedisCache(rdb)
		checkCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}

	// ── 5. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckStorage: checkStorage,
		CheckCache:   checkCache,
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	khatmaService := khatma.NewService(startupCtx, khatma.NewPersister(store, log), log)
	khatmaHandler := khatma.NewHandler(khatmaService)

	adhkarService := adhkar.NewService(startupCtx, store, log)
	adhkarHandler := adhkar.NewHandler(adhkarService)

	quranClient := quran.NewClient(quran.Options{
		BaseURL:            cfg.QuranAPIBaseURL,
		AudioBaseURL:       cfg.QuranAudioBaseURL,
		TextEdition:        cfg.QuranTextEdition,
		TranslationEdition: cfg.QuranTranslationEdition,
		DefaultReciter:     cfg.QuranDefaultReciter,
	}, quranCache, log)
	quranHandler := quran.NewHandler(quranClient)

	scheduler := reminder.NewScheduler(store, &reminder.LogNotifier{Logger: log}, log)
	scheduler.Start(context.Background())
	defer scheduler.Stop()
	reminderHandler := reminder.NewHandler(scheduler)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Khatma:    khatmaHandler,
		Adhkar:    adhkarHandler,
		Quran:     quranHandler,
		Reminder:  reminderHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()
	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// openStore builds the snapshot store named by STORAGE_DRIVER and a
// readiness checker for it. Postgres deployments run migrations first.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Store, func() error) {
	switch cfg.StorageDriver {
	case "postgres":
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
		return storage.NewPostgresStore(pool), func() error {
			return pgstore.Ping(context.Background(), pool)
		}

	case "memory":
		log.Warn("memory storage selected: data will not survive a restart")
		return storage.NewMemoryStore(), nil

	default: // sqlite
		store, err := storage.NewSQLiteStore(cfg.SQLitePath, log)
		must(log, err, "open sqlite store")
		return store, func() error {
			_, err := store.Get(context.Background(), "healthcheck")
			if errors.Is(err, storage.ErrKeyNotFound) {
				return nil
			}
			return err
		}
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

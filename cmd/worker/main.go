package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	services "github.com/felixgeelhaar/nudge/internal/engagement/application/services"
	engagementDomain "github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/felixgeelhaar/nudge/internal/engagement/infrastructure/delivery"
	engagementPersistence "github.com/felixgeelhaar/nudge/internal/engagement/infrastructure/persistence"
	"github.com/felixgeelhaar/nudge/internal/engagement/infrastructure/store"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
	habitsPersistence "github.com/felixgeelhaar/nudge/internal/habits/infrastructure/persistence"
	"github.com/felixgeelhaar/nudge/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/nudge/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/nudge/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.Info("starting nudge worker")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogJSON {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	}

	// Storage: PostgreSQL when configured, embedded SQLite otherwise.
	var (
		habitRepo       habitsDomain.Repository
		biasRepo        engagementDomain.BiasRepository
		interactionRepo engagementDomain.InteractionRepository
	)
	if cfg.UsePostgres() {
		poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		if cfg.DatabaseMaxConns > 0 {
			poolCfg.MaxConns = int32(cfg.DatabaseMaxConns)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to PostgreSQL")

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		// Habit data still lives in the embedded store; only engagement
		// state moves server-side.
		db, err := sqlite.Open(ctx, cfg.DatabasePath)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		habitRepo = habitsPersistence.NewSQLiteHabitRepository(db)
		biasRepo = engagementPersistence.NewPostgresBiasRepository(pool)
		interactionRepo = engagementPersistence.NewPostgresInteractionRepository(pool)
	} else {
		db, err := sqlite.Open(ctx, cfg.DatabasePath)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		habitRepo = habitsPersistence.NewSQLiteHabitRepository(db)
		biasRepo = engagementPersistence.NewSQLiteBiasRepository(db)
		interactionRepo = engagementPersistence.NewSQLiteInteractionRepository(db)
	}

	// Delivery channel: RabbitMQ when configured, in-memory otherwise.
	var channel engagementDomain.DeliveryChannel
	if cfg.RabbitMQURL != "" {
		rabbitChannel, err := delivery.NewRabbitMQChannel(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer rabbitChannel.Close()
		channel = rabbitChannel
	} else {
		logger.Warn("RabbitMQ not configured, using in-memory delivery channel")
		channel = delivery.NewMemoryChannel()
	}

	// Pending-notification registry: Redis when configured.
	var registry delivery.Registry
	if cfg.RedisURL != "" {
		redisRegistry, err := delivery.NewRedisRegistry(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer redisRegistry.Close()
		registry = redisRegistry
		logger.Info("connected to Redis")
	} else {
		registry = delivery.NewMemoryRegistry()
	}

	tracked := delivery.NewTrackedChannel(delivery.NewResilientChannel(channel, logger), registry, logger)

	// A previous process may have left pending notifications behind.
	if err := tracked.CancelAllPending(ctx); err != nil {
		logger.Warn("failed to cancel stale notifications", "error", err)
	}

	behaviorStore := store.NewRepositoryStore(habitRepo, interactionRepo)
	tracker := services.NewAdaptationTracker(behaviorStore, biasRepo, interactionRepo, logger)
	orchestrator := services.NewOrchestrator(behaviorStore, tracked, tracker, logger)

	// First pass immediately, then on the configured cadence.
	if err := orchestrator.RunSchedulingPass(ctx); err != nil {
		logger.Error("scheduling pass failed", "error", err)
	}

	passTicker := time.NewTicker(cfg.PassInterval)
	defer passTicker.Stop()
	rebalanceTicker := time.NewTicker(cfg.RebalanceInterval)
	defer rebalanceTicker.Stop()

	logger.Info("worker running",
		"pass_interval", cfg.PassInterval,
		"rebalance_interval", cfg.RebalanceInterval,
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-passTicker.C:
			if err := orchestrator.RunSchedulingPass(ctx); err != nil {
				logger.Error("scheduling pass failed", "error", err)
			}
		case <-rebalanceTicker.C:
			if err := tracker.RebalanceFrequencies(ctx); err != nil {
				logger.Error("rebalance failed", "error", err)
			}
		}
	}
}

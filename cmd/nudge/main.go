package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/nudge/adapter/cli"
	"github.com/felixgeelhaar/nudge/adapter/cli/habit"
	"github.com/felixgeelhaar/nudge/adapter/cli/remind"
	services "github.com/felixgeelhaar/nudge/internal/engagement/application/services"
	"github.com/felixgeelhaar/nudge/internal/engagement/infrastructure/delivery"
	engagementPersistence "github.com/felixgeelhaar/nudge/internal/engagement/infrastructure/persistence"
	"github.com/felixgeelhaar/nudge/internal/engagement/infrastructure/store"
	habitsServices "github.com/felixgeelhaar/nudge/internal/habits/application/services"
	habitsPersistence "github.com/felixgeelhaar/nudge/internal/habits/infrastructure/persistence"
	"github.com/felixgeelhaar/nudge/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/nudge/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/nudge/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/nudge/pkg/config"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	cli.SetLogger(logger)

	// Open the embedded database
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

	// Wire the engine. The CLI delivers in-process: pending notifications
	// live in memory and are printed rather than pushed.
	habitRepo := habitsPersistence.NewSQLiteHabitRepository(db)
	biasRepo := engagementPersistence.NewSQLiteBiasRepository(db)
	interactionRepo := engagementPersistence.NewSQLiteInteractionRepository(db)
	behaviorStore := store.NewRepositoryStore(habitRepo, interactionRepo)

	// Domain events go to RabbitMQ when a broker is configured, otherwise
	// they are logged and dropped.
	var events eventbus.Publisher = eventbus.NewNoopPublisher(logger)
	if cfg.RabbitMQURL != "" {
		publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("failed to connect event publisher, events will be dropped", "error", err)
		} else {
			events = publisher
			defer publisher.Close()
		}
	}

	channel := delivery.NewMemoryChannel()
	tracker := services.NewAdaptationTracker(behaviorStore, biasRepo, interactionRepo, logger)
	orchestrator := services.NewOrchestrator(behaviorStore, channel, tracker, logger)
	habitService := habitsServices.NewHabitService(habitRepo, events, logger)

	cli.SetApp(&cli.App{
		Habits:       habitRepo,
		HabitService: habitService,
		Store:        behaviorStore,
		Orchestrator: orchestrator,
		Tracker:      tracker,
		Channel:      channel,
	})

	cli.AddCommand(habit.Cmd)
	cli.AddCommand(remind.Cmd)

	cli.Execute()
}

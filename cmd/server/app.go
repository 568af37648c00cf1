package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/event-calendar-api/internal/config"
	"github.com/phrazzld/event-calendar-api/internal/platform/cache"
	"github.com/phrazzld/event-calendar-api/internal/platform/postgres"
	"github.com/phrazzld/event-calendar-api/internal/service"
	"github.com/phrazzld/event-calendar-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore
	userStore store.UserStore

	// Service interfaces
	taskService service.TaskService
	userService service.UserService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must be established before application initialization.
// An unreachable Redis leaves the service running without a cache.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	tx := store.NewSQLTransactor(db)

	var taskCache service.TaskListCache
	if cfg.Cache.Enabled() {
		rdb, err := cache.Connect(ctx, cfg.Cache)
		if err != nil {
			logger.Warn("Task list cache unavailable, continuing without it",
				"addr", cfg.Cache.Addr,
				"error", err)
		} else {
			app.redis = rdb
			taskCache = cache.NewTaskCache(rdb, cfg.Cache.Prefix, cfg.Cache.TTL)
			logger.Info("Task list cache connected",
				"addr", cfg.Cache.Addr,
				"ttl", cfg.Cache.TTL.String())
		}
	}

	app.taskService = service.NewTaskService(app.taskStore, app.userStore, tx, taskCache, logger)
	app.userService = service.NewUserService(app.userStore, app.taskStore, tx, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

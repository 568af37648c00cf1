package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/event-calendar-api/internal/api"
	apiMiddleware "github.com/phrazzld/event-calendar-api/internal/api/middleware"
	"github.com/phrazzld/event-calendar-api/internal/platform/metrics"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	if app.config.Metrics.Enabled {
		r.Use(metrics.Middleware)
	}
	// Innermost, so recovered panics are logged and counted as 500.
	r.Use(middleware.Recoverer)

	api.NewTaskHandler(app.taskService, app.logger).RegisterRoutes(r)
	api.NewUserHandler(app.userService, app.logger).RegisterRoutes(r)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	if app.config.Metrics.Enabled {
		r.Handle(app.config.Metrics.Path, metrics.Handler())
	}

	return r
}

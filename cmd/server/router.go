package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dosewise/dosewise-api/internal/api"
	apiMiddleware "github.com/dosewise/dosewise-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	scheduleHandler := api.NewScheduleHandler(app.dosingService, app.logger)
	safetyHandler := api.NewSafetyHandler(app.safetyService, app.alertEmitter, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/schedules/validate", scheduleHandler.ValidateSchedule)
		r.Post("/schedules/next-occurrence", scheduleHandler.NextOccurrence)
		r.Post("/schedules/conflicts", scheduleHandler.DetectConflicts)

		r.Post("/safety/interactions", safetyHandler.CheckInteractions)
		r.Post("/safety/assessment", safetyHandler.AssessSafety)
		r.Post("/safety/alternatives", safetyHandler.SaferAlternatives)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

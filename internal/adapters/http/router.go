// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jalonhq/jalon/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	stageHandler *handlers.StageHandler,
	taskHandler *handlers.TaskHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Stages.
		r.Post("/stages", stageHandler.CreateStage)
		r.Get("/stages/{id}", stageHandler.GetStage)
		r.Post("/stages/{id}/validate", stageHandler.ValidateStage)
		r.Get("/stages/{id}/tasks", taskHandler.ListStageTasks)
		r.Get("/projects/{projectId}/stages", stageHandler.ListProjectStages)

		// Tasks.
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Post("/tasks/{id}/assign", taskHandler.AssignTask)
		r.Patch("/tasks/{id}/status", taskHandler.UpdateTaskStatus)
	})

	return r
}

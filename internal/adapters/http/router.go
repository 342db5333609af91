// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/handlers"
)

// MetricsEndpoint mounts a metrics exposition handler at Path. A nil
// Handler leaves the endpoint unregistered.
type MetricsEndpoint struct {
	Path    string
	Handler http.Handler
}

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
	metrics MetricsEndpoint,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	if metrics.Handler != nil && metrics.Path != "" {
		r.Method(http.MethodGet, metrics.Path, metrics.Handler)
	}

	// Todo resource, served at the root.
	r.Post("/", todoHandler.Create)
	r.Get("/", todoHandler.List)
	r.Delete("/", todoHandler.DeleteAll)
	r.Get("/{id}", todoHandler.Get)

	return r
}

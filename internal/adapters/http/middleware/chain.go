package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/todo-backend/internal/platform/telemetry"
)

// StackConfig holds what the todo middleware stack needs from the process.
// A nil Metrics or Observer disables that recorder; a zero Timeout leaves
// requests bounded only by the server's own timeouts.
type StackConfig struct {
	Logger   *slog.Logger
	Metrics  *telemetry.Metrics
	Observer HTTPObserver
	Timeout  time.Duration
}

// Stack builds the middleware every todo and health route runs behind:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Prometheus → Logging → Timeout
//
// It is mounted inside the router so the matched route pattern is visible
// to the recorders once the handler returns.
func Stack(cfg StackConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var timeout func(http.Handler) http.Handler
	if cfg.Timeout > 0 {
		timeout = Timeout(cfg.Timeout)
	}

	return Chain(
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(cfg.Metrics),
		Prometheus(cfg.Observer),
		Logging(logger),
		timeout,
	)
}

// Chain composes middleware so the first argument is outermost. Nil entries
// are skipped, which lets Stack leave out optional layers.
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			if middlewares[i] == nil {
				continue
			}
			handler = middlewares[i](handler)
		}
		return handler
	}
}

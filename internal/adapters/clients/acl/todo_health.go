package acl

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
)

// HealthName is the identifier the remote store registers under. It matches
// the service name given to the underlying httpclient for traces and metrics.
const HealthName = "todo-upstream"

// Name returns the identifier used when this store is registered with a
// [ports.HealthRegistry].
func (s *TodoStore) Name() string {
	return HealthName
}

// HealthCheck reports the upstream's availability from the circuit breaker
// state. No network call is made.
//
// State mapping:
//   - "closed"    -- upstream is operating normally; returns nil.
//   - "half-open" -- the breaker is probing recovery; returns a degraded error.
//   - "open"      -- the breaker is rejecting requests; returns a failing error.
//
// Errors wrap [domain.ErrUnavailable].
func (s *TodoStore) HealthCheck(_ context.Context) error {
	state := s.req.CircuitBreakerState()
	switch state {
	case "closed":
		return nil
	case "half-open":
		return fmt.Errorf("%s: degraded (circuit breaker half-open): %w", HealthName, domain.ErrUnavailable)
	case "open":
		return fmt.Errorf("%s: failing (circuit breaker open): %w", HealthName, domain.ErrUnavailable)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %q: %w", HealthName, state, domain.ErrUnavailable)
	}
}

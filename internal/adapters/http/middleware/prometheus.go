package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests that no chi route claimed, keeping raw
// paths out of metric labels.
const unmatchedRoute = "unmatched"

// HTTPObserver records the outcome of a served request. Implemented by
// *metrics.Metrics.
type HTTPObserver interface {
	ObserveHTTPRequest(route, method string, status int, elapsed time.Duration)
}

// Prometheus returns middleware that reports every request to the observer,
// labelled by the chi route pattern. A nil observer disables the middleware.
func Prometheus(observer HTTPObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if observer == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := record(w)
			next.ServeHTTP(rec, r)

			observer.ObserveHTTPRequest(routePattern(r), r.Method, rec.status, time.Since(start))
		})
	}
}

// routePattern returns the chi pattern that matched r, such as "/{id}".
// Only meaningful once the router has served the request.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

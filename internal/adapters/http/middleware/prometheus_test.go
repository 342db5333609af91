package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-backend/internal/platform/metrics"
)

func TestPrometheus_LabelsByRoutePattern(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	r := chi.NewRouter()
	r.Use(middleware.Prometheus(m))
	r.Get("/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/1", "/2", "/3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	want := `
# HELP todo_http_requests_total Total number of HTTP requests by route, method and status code.
# TYPE todo_http_requests_total counter
todo_http_requests_total{method="GET",route="/{id}",status_code="404"} 3
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(want), "todo_http_requests_total"); err != nil {
		t.Error(err)
	}
}

func TestPrometheus_UnmatchedRoute(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	handler := middleware.Prometheus(m)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/router/here", http.NoBody))

	want := `
# HELP todo_http_requests_total Total number of HTTP requests by route, method and status code.
# TYPE todo_http_requests_total counter
todo_http_requests_total{method="GET",route="unmatched",status_code="200"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(want), "todo_http_requests_total"); err != nil {
		t.Error(err)
	}
}

func TestPrometheus_NilObserverPassesThrough(t *testing.T) {
	t.Parallel()

	called := false
	handler := middleware.Prometheus(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if !called {
		t.Fatal("next handler not called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

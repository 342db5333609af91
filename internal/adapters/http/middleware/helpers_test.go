package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	adapthttp "github.com/jsamuelsen11/todo-backend/internal/adapters/http"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-backend/mocks"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// todoRouter serves the todo routes from a mocked service behind mws.
func todoRouter(t *testing.T, mws ...func(http.Handler) http.Handler) (http.Handler, *mocks.MockTodoService) {
	t.Helper()
	svc := mocks.NewMockTodoService(t)
	health := handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t))
	return adapthttp.NewRouter(handlers.NewTodoHandler(svc), health, adapthttp.MetricsEndpoint{}, mws...), svc
}

func postTodo(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func getTodo(id string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/"+id, http.NoBody)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("Content-Type = %q, want application/problem+json", ct)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding problem body: %v", err)
	}
	return body
}

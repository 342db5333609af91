package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
)

func TestRecovery_PassesThroughCreate(t *testing.T) {
	t.Parallel()
	h, svc := todoRouter(t, middleware.Recovery(discardLogger()))

	svc.EXPECT().Add(mock.Anything, mock.Anything).Return(&todo.Todo{ID: 1, Title: "walk the dog"}, nil)

	rec := serve(h, postTodo(`{"title":"walk the dog"}`))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"title":"walk the dog"`) {
		t.Errorf("body = %s, want the created todo", rec.Body.String())
	}
}

func TestRecovery_StorePanicBecomesProblem(t *testing.T) {
	t.Parallel()
	h, svc := todoRouter(t, middleware.Recovery(discardLogger()))

	svc.EXPECT().SearchByID(mock.Anything, int64(7)).
		RunAndReturn(func(context.Context, int64) (*todo.Todo, error) {
			panic("row scan on closed cursor")
		})

	rec := serve(h, getTodo("7"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	body := decodeProblem(t, rec)
	if title, _ := body["title"].(string); title != "Internal Server Error" {
		t.Errorf("title = %q, want %q", title, "Internal Server Error")
	}
	if detail, _ := body["detail"].(string); strings.Contains(detail, "cursor") {
		t.Errorf("detail = %q leaks the panic value", detail)
	}
}

func TestRecovery_LogsPanicWithRouteAndStack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h, svc := todoRouter(t, middleware.Recovery(testLogger(&buf)))

	svc.EXPECT().Add(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, todo.Request) (*todo.Todo, error) {
			panic("id sequence exhausted")
		})

	serve(h, postTodo(`{"title":"x"}`))

	out := buf.String()
	for _, want := range []string{"panic recovered", "id sequence exhausted", "goroutine", "route=/", "method=POST"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRecovery_HandlesNonStringPanic(t *testing.T) {
	t.Parallel()
	h, svc := todoRouter(t, middleware.Recovery(discardLogger()))

	svc.EXPECT().SearchAll(mock.Anything).
		RunAndReturn(func(context.Context) ([]todo.Todo, error) {
			panic(42)
		})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestRecovery_KeepsStatusWhenHeadersWritten(t *testing.T) {
	t.Parallel()

	handler := middleware.Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"id":1`))
		panic("encoder failed mid-list")
	}))

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d (already sent)", rec.Code, http.StatusOK)
	}
}

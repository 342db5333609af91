package dto_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/platform/logging"
)

func TestNewErrorResponse_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing todo", &domain.NotFoundError{Entity: "todo", ID: 123}, http.StatusNotFound},
		{"wrapped not found from a store", fmt.Errorf("todo 9: %w", domain.ErrNotFound), http.StatusNotFound},
		{"bad body field", &domain.ValidationError{Fields: map[string]string{"order": "must be an integer"}}, http.StatusBadRequest},
		{"bad path id", &dto.PathParamError{Param: "id", Value: "abc", Message: "must be an integer"}, http.StatusBadRequest},
		{"upstream conflict", domain.ErrConflict, http.StatusConflict},
		{"upstream unreachable", fmt.Errorf("listing todos upstream: %w", domain.ErrUnavailable), http.StatusBadGateway},
		{"store deadline", fmt.Errorf("selecting todos: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"store failure", errors.New("sql: database is closed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/123", nil)
			got := dto.NewErrorResponse(r, tt.err)

			if got.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", got.Status, tt.wantStatus)
			}
			if got.Title != http.StatusText(tt.wantStatus) {
				t.Errorf("Title = %q, want %q", got.Title, http.StatusText(tt.wantStatus))
			}
		})
	}
}

func TestNewErrorResponse_NotFoundTodo(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/123", nil)
	got := dto.NewErrorResponse(r, &domain.NotFoundError{Entity: "todo", ID: 123})

	if got.Type != "about:blank" {
		t.Errorf("Type = %q, want %q", got.Type, "about:blank")
	}
	if got.Instance != "/123" {
		t.Errorf("Instance = %q, want %q", got.Instance, "/123")
	}
	if got.Detail != "todo 123 not found" {
		t.Errorf("Detail = %q, want %q", got.Detail, "todo 123 not found")
	}
	if got.Errors != nil {
		t.Errorf("Errors = %v, want nil", got.Errors)
	}
}

func TestNewErrorResponse_HidesStoreInternals(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	got := dto.NewErrorResponse(r, errors.New("inserting todo: disk I/O error at /var/lib/todo.db"))

	if strings.Contains(got.Detail, "todo.db") {
		t.Errorf("Detail = %q, leaks the store error", got.Detail)
	}
}

func TestNewErrorResponse_BodyFieldErrors(t *testing.T) {
	t.Parallel()

	verr := &domain.ValidationError{Fields: map[string]string{
		"title":     "must be a string",
		"order":     "must be an integer",
		"completed": "must be a boolean",
	}}

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	got := dto.NewErrorResponse(r, verr)

	want := []string{"body.completed", "body.order", "body.title"}
	if len(got.Errors) != len(want) {
		t.Fatalf("len(Errors) = %d, want %d", len(got.Errors), len(want))
	}
	for i, loc := range want {
		if got.Errors[i].Location != loc {
			t.Errorf("Errors[%d].Location = %q, want %q", i, got.Errors[i].Location, loc)
		}
	}
}

func TestNewErrorResponse_PathParamError(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/abc", nil)
	got := dto.NewErrorResponse(r, &dto.PathParamError{Param: "id", Value: "abc", Message: "must be an integer"})

	if len(got.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(got.Errors))
	}
	detail := got.Errors[0]
	if detail.Location != "path.id" {
		t.Errorf("Location = %q, want %q", detail.Location, "path.id")
	}
	if detail.Message != "must be an integer" {
		t.Errorf("Message = %q, want %q", detail.Message, "must be an integer")
	}
	if detail.Value != "abc" {
		t.Errorf("Value = %v, want %q", detail.Value, "abc")
	}
}

func TestPathParamError_IsValidation(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("reading id: %w", &dto.PathParamError{Param: "id", Value: "1.5", Message: "must be an integer"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = false, want true")
	}
}

func TestWriteErrorResponse_ProblemJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	dto.WriteErrorResponse(w, r, &domain.ValidationError{Fields: map[string]string{"order": "must be an integer"}})

	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/problem+json")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.order" {
		t.Errorf("Errors = %+v, want a single body.order entry", resp.Errors)
	}
}

func TestWriteErrorResponse_LogsServerErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/", nil)
	r = r.WithContext(logging.WithLogger(r.Context(), logger))

	dto.WriteErrorResponse(w, r, errors.New("deleting todos: database is locked"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(buf.String(), "database is locked") {
		t.Errorf("log output %q does not contain the store error", buf.String())
	}
}

func TestWriteErrorResponse_DoesNotLogClientErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/123", nil)
	r = r.WithContext(logging.WithLogger(r.Context(), logger))

	dto.WriteErrorResponse(w, r, &domain.NotFoundError{Entity: "todo", ID: 123})

	if buf.Len() != 0 {
		t.Errorf("log output = %q, want none for a 404", buf.String())
	}
}

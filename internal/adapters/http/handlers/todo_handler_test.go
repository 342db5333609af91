package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/mocks"
)

func newTodoHandler(t *testing.T) (*handlers.TodoHandler, *mocks.MockTodoService) {
	t.Helper()
	svc := mocks.NewMockTodoService(t)
	return handlers.NewTodoHandler(svc), svc
}

// --- Create ---

func TestCreate_ReturnsEntityWithAssignedID(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().Add(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req todo.Request) (*todo.Todo, error) {
			created := todo.New(req)
			created.ID = 123
			return created, nil
		})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", jsonBody(t, map[string]any{"title": sampleTitle}))
	h.Create(rec, req)

	requireStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	resp := decodeJSON[dto.TodoResponse](t, rec)
	if resp.ID != 123 {
		t.Errorf("ID = %d, want 123", resp.ID)
	}
	if resp.Title != sampleTitle {
		t.Errorf("Title = %q, want %q", resp.Title, sampleTitle)
	}
}

func TestCreate_PassesOptionalFields(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().Add(mock.Anything, mock.MatchedBy(func(req todo.Request) bool {
		return req.Title == nil && req.Order != nil && *req.Order == 4 &&
			req.Completed != nil && *req.Completed
	})).Return(&todo.Todo{ID: 1, Order: 4, Completed: true}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"order":4,"completed":true}`))
	h.Create(rec, req)

	requireStatus(t, rec, http.StatusOK)
}

func TestCreate_EmptyBodyUsesDefaults(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().Add(mock.Anything, todo.Request{}).Return(&todo.Todo{ID: 1}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	h.Create(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TodoResponse](t, rec)
	if resp != (dto.TodoResponse{ID: 1}) {
		t.Errorf("response = %+v, want defaults with id 1", resp)
	}
}

func TestCreate_MalformedJSON(t *testing.T) {
	t.Parallel()
	h, _ := newTodoHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	h.Create(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}

func TestCreate_WrongFieldType(t *testing.T) {
	t.Parallel()
	h, _ := newTodoHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"order":"first"}`))
	h.Create(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.order" {
		t.Fatalf("Errors = %+v, want a single body.order entry", resp.Errors)
	}
	if resp.Errors[0].Message != "must be an integer" {
		t.Errorf("Message = %q, want %q", resp.Errors[0].Message, "must be an integer")
	}
}

func TestCreate_WrongFieldTypeMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body    string
		wantLoc string
		wantMsg string
	}{
		{`{"completed":"yes"}`, "body.completed", "must be a boolean"},
		{`{"title":42}`, "body.title", "must be a string"},
		{`{"order":1.5}`, "body.order", "must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.wantLoc, func(t *testing.T) {
			t.Parallel()
			h, _ := newTodoHandler(t)

			rec := httptest.NewRecorder()
			h.Create(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))

			requireStatus(t, rec, http.StatusBadRequest)
			resp := decodeJSON[dto.ErrorResponse](t, rec)
			if len(resp.Errors) != 1 {
				t.Fatalf("Errors = %+v, want one entry", resp.Errors)
			}
			if resp.Errors[0].Location != tt.wantLoc || resp.Errors[0].Message != tt.wantMsg {
				t.Errorf("Errors[0] = %+v, want %s %q", resp.Errors[0], tt.wantLoc, tt.wantMsg)
			}
		})
	}
}

func TestCreate_TrailingDataRejected(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"title":"x"} trailing`,
		`{"title":"x"}{"title":"y"}`,
		`{"title":"x"} []`,
	} {
		h, _ := newTodoHandler(t)

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

		requireStatus(t, rec, http.StatusBadRequest)
		resp := decodeJSON[dto.ErrorResponse](t, rec)
		if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.body" {
			t.Errorf("body %q: Errors = %+v, want a single body.body entry", body, resp.Errors)
		}
	}
}

func TestCreate_TrailingWhitespaceAccepted(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().Add(mock.Anything, mock.Anything).Return(&todo.Todo{ID: 1, Title: "x"}, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{\"title\":\"x\"}\n\t ")))

	requireStatus(t, rec, http.StatusOK)
}

func TestCreate_ServiceError(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().Add(mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("creating todo upstream: %w", domain.ErrUnavailable))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	h.Create(rec, req)

	requireStatus(t, rec, http.StatusBadGateway)
}

// --- Get ---

func TestGet_Found(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	want := sampleTodo()
	svc.EXPECT().SearchByID(mock.Anything, int64(123)).Return(&want, nil)

	rec := httptest.NewRecorder()
	req := getByID("123")
	h.Get(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TodoResponse](t, rec)
	if resp != dto.ToTodoResponse(&want) {
		t.Errorf("response = %+v, want %+v", resp, dto.ToTodoResponse(&want))
	}
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().SearchByID(mock.Anything, int64(123)).
		Return(nil, &domain.NotFoundError{Entity: "todo", ID: 123})

	rec := httptest.NewRecorder()
	req := getByID("123")
	h.Get(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if resp.Detail != "todo 123 not found" {
		t.Errorf("Detail = %q, want %q", resp.Detail, "todo 123 not found")
	}
}

func TestGet_InvalidID(t *testing.T) {
	t.Parallel()
	h, _ := newTodoHandler(t)

	for _, raw := range []string{"abc", "1.5", "99999999999999999999"} {
		rec := httptest.NewRecorder()
		req := getByID(raw)
		h.Get(rec, req)

		requireStatus(t, rec, http.StatusBadRequest)
		resp := decodeJSON[dto.ErrorResponse](t, rec)
		if len(resp.Errors) != 1 {
			t.Fatalf("id %q: Errors = %+v, want one entry", raw, resp.Errors)
		}
		if resp.Errors[0].Location != "path.id" {
			t.Errorf("id %q: Location = %q, want %q", raw, resp.Errors[0].Location, "path.id")
		}
		if resp.Errors[0].Value != raw {
			t.Errorf("id %q: Value = %v, want the raw id", raw, resp.Errors[0].Value)
		}
	}
}

// --- List ---

func TestList_ReturnsArrayOfServiceCount(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	todos := make([]todo.Todo, 10)
	for i := range todos {
		todos[i] = todo.Todo{ID: int64(i + 1), Title: sampleTitle}
	}
	svc.EXPECT().SearchAll(mock.Anything).Return(todos, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[[]dto.TodoResponse](t, rec)
	if len(resp) != 10 {
		t.Errorf("len = %d, want 10", len(resp))
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().SearchAll(mock.Anything).Return([]todo.Todo{}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	requireStatus(t, rec, http.StatusOK)
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestList_ServiceError(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().SearchAll(mock.Anything).Return(nil, errors.New("db down"))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	requireStatus(t, rec, http.StatusInternalServerError)
}

// --- DeleteAll ---

func TestDeleteAll_OK(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().DeleteAll(mock.Anything).Return(nil)

	rec := httptest.NewRecorder()
	h.DeleteAll(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

	requireStatus(t, rec, http.StatusOK)
}

func TestDeleteAll_ServiceError(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().DeleteAll(mock.Anything).Return(errors.New("db down"))

	rec := httptest.NewRecorder()
	h.DeleteAll(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

	requireStatus(t, rec, http.StatusInternalServerError)
}

// --- Round trip ---

func TestCreate_JSONRoundTripPreservesFields(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().Add(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req todo.Request) (*todo.Todo, error) {
			created := todo.New(req)
			created.ID = 7
			return created, nil
		})

	body := jsonBody(t, dto.TodoRequest{Title: ptr("round"), Order: ptr(int64(9)), Completed: ptr(true)})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/", body))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TodoResponse](t, rec)
	want := dto.TodoResponse{ID: 7, Title: "round", Order: 9, Completed: true}
	if resp != want {
		t.Errorf("response = %+v, want %+v", resp, want)
	}
}

package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	acltodo "github.com/jsamuelsen11/todo-backend/internal/adapters/clients/acl/todo"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/platform/httpclient"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.TodoRepository = (*TodoStore)(nil)
	_ ports.HealthChecker  = (*TodoStore)(nil)
)

// TodoStore is the remote implementation of [ports.TodoRepository]. It
// forwards every operation to an upstream todo-backend over the same HTTP
// contract this service exposes:
//
//	Create    → POST /
//	FindByID  → GET /{id}
//	FindAll   → GET /
//	DeleteAll → DELETE /
//
// Payloads go through the translators in [acltodo]; HTTP failures are mapped
// to domain errors by [TranslateHTTPError]. The underlying
// [httpclient.Client] provides circuit breaking, rate limiting, retries for
// idempotent calls and OpenTelemetry tracing.
type TodoStore struct {
	req *Requester
}

// NewTodoStore creates a TodoStore that sends requests through the given
// [httpclient.Client]. The client's BaseURL should point at the upstream
// root (e.g. "http://todo-upstream:8080").
func NewTodoStore(client *httpclient.Client, logger *slog.Logger) *TodoStore {
	return &TodoStore{req: NewRequester(client, logger)}
}

// Create sends POST / and returns the entity with the upstream-assigned id.
func (s *TodoStore) Create(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	var dto acltodo.TodoDTO
	if err := s.req.Do(ctx, http.MethodPost, "/", http.StatusOK, acltodo.ToCreateTodoRequest(t), &dto); err != nil {
		return nil, fmt.Errorf("creating todo upstream: %w", err)
	}
	created := acltodo.ToDomainTodo(&dto)
	return &created, nil
}

// FindByID sends GET /{id}. An upstream 404 surfaces as domain.ErrNotFound.
func (s *TodoStore) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	var dto acltodo.TodoDTO
	if err := s.req.Do(ctx, http.MethodGet, fmt.Sprintf("/%d", id), http.StatusOK, nil, &dto); err != nil {
		return nil, fmt.Errorf("fetching todo %d upstream: %w", id, err)
	}
	found := acltodo.ToDomainTodo(&dto)
	return &found, nil
}

// FindAll sends GET / and returns the entities ordered by [todo.Compare],
// whatever order the upstream used.
func (s *TodoStore) FindAll(ctx context.Context) ([]todo.Todo, error) {
	var dtos []acltodo.TodoDTO
	if err := s.req.Do(ctx, http.MethodGet, "/", http.StatusOK, nil, &dtos); err != nil {
		return nil, fmt.Errorf("listing todos upstream: %w", err)
	}
	todos := acltodo.ToDomainTodoList(dtos)
	slices.SortFunc(todos, todo.Compare)
	return todos, nil
}

// DeleteAll sends DELETE /.
func (s *TodoStore) DeleteAll(ctx context.Context) error {
	if err := s.req.Do(ctx, http.MethodDelete, "/", http.StatusOK, nil, nil); err != nil {
		return fmt.Errorf("deleting todos upstream: %w", err)
	}
	return nil
}

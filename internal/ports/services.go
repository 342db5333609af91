package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
)

// TodoService defines the service port for todo operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type TodoService interface {
	// Add creates a todo from the request and returns it with its
	// server-assigned ID. Absent request fields take their defaults.
	Add(ctx context.Context, req todo.Request) (*todo.Todo, error)

	// SearchByID returns the todo with the given ID.
	// Returns domain.ErrNotFound if no such todo exists.
	SearchByID(ctx context.Context, id int64) (*todo.Todo, error)

	// SearchAll returns every stored todo. The result is never nil.
	SearchAll(ctx context.Context) ([]todo.Todo, error)

	// DeleteAll removes every stored todo. Calling it on an empty store
	// succeeds.
	DeleteAll(ctx context.Context) error
}

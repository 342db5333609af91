package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
)

// TodoRepository defines the persistence port for todos.
// Implemented by the storage adapters (memory, sqlite, postgres) and by the
// remote ACL client; called by the application layer.
type TodoRepository interface {
	// Create persists t and returns the stored entity with a freshly
	// assigned, unique ID. Any ID already set on t is ignored.
	Create(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// FindByID returns the todo with the given ID.
	// Returns domain.ErrNotFound if it does not exist.
	FindByID(ctx context.Context, id int64) (*todo.Todo, error)

	// FindAll returns every stored todo sorted by todo.Compare.
	// Returns an empty, non-nil slice when the store is empty.
	FindAll(ctx context.Context) ([]todo.Todo, error)

	// DeleteAll removes every stored todo. Idempotent.
	DeleteAll(ctx context.Context) error
}

// Package memory implements [ports.TodoRepository] on an in-process map.
// It is the default driver and the one used by tests and local runs that
// need no external state.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// Compile-time interface check.
var _ ports.TodoRepository = (*Store)(nil)

// Store keeps todos in a map guarded by a read/write mutex. IDs come from a
// monotonically increasing counter and are never reused, including after
// DeleteAll.
type Store struct {
	mu     sync.RWMutex
	todos  map[int64]todo.Todo
	lastID int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{todos: make(map[int64]todo.Todo)}
}

// Create stores a copy of t under the next ID.
func (s *Store) Create(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	stored := *t
	stored.ID = s.lastID
	s.todos[stored.ID] = stored

	return &stored, nil
}

// FindByID returns a copy of the todo with the given ID.
func (s *Store) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.todos[id]
	if !ok {
		return nil, fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	return &t, nil
}

// FindAll returns copies of every todo sorted by [todo.Compare].
func (s *Store) FindAll(ctx context.Context) ([]todo.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]todo.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		out = append(out, t)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, todo.Compare)
	return out, nil
}

// DeleteAll removes every todo. The ID counter is left untouched.
func (s *Store) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	clear(s.todos)
	s.mu.Unlock()
	return nil
}

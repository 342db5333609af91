// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService on top of a TodoRepository. It
// applies request defaults, logs each operation and normalizes repository
// results (not-found errors, nil slices) for the HTTP layer.
type TodoService struct {
	repo   ports.TodoRepository
	logger *slog.Logger
}

// NewTodoService creates a TodoService backed by the given repository.
// A nil logger discards all output.
func NewTodoService(repo ports.TodoRepository, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TodoService{
		repo:   repo,
		logger: logger,
	}
}

// Add builds a todo from the request and persists it.
func (s *TodoService) Add(ctx context.Context, req todo.Request) (*todo.Todo, error) {
	t := todo.New(req)
	s.logger.InfoContext(ctx, "adding todo", slog.String("title", t.Title))

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to add todo",
			slog.String("operation", "Add"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// SearchByID returns a single todo. A missing todo is reported as a
// *domain.NotFoundError and logged at debug level only.
func (s *TodoService) SearchByID(ctx context.Context, id int64) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "fetching todo", slog.Int64("id", id))

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.DebugContext(ctx, "todo not found", slog.Int64("id", id))
			return nil, &domain.NotFoundError{Entity: "todo", ID: id}
		}
		s.logger.ErrorContext(ctx, "failed to fetch todo",
			slog.String("operation", "SearchByID"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return t, nil
}

// SearchAll returns every stored todo, never nil.
func (s *TodoService) SearchAll(ctx context.Context) ([]todo.Todo, error) {
	s.logger.InfoContext(ctx, "listing todos")

	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list todos",
			slog.String("operation", "SearchAll"),
			slog.Any("error", err),
		)
		return nil, err
	}

	if todos == nil {
		todos = []todo.Todo{}
	}
	return todos, nil
}

// DeleteAll removes every stored todo.
func (s *TodoService) DeleteAll(ctx context.Context) error {
	s.logger.InfoContext(ctx, "deleting all todos")

	if err := s.repo.DeleteAll(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete todos",
			slog.String("operation", "DeleteAll"),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

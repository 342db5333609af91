// Package sqlite implements [ports.TodoRepository] on an embedded SQLite
// database using the pure-Go modernc.org/sqlite driver. The schema is
// managed by goose migrations embedded in the binary.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/platform/config"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Name is the identifier the store registers under for health checks.
const Name = "sqlite"

// Compile-time interface checks.
var (
	_ ports.TodoRepository = (*Store)(nil)
	_ ports.HealthChecker  = (*Store)(nil)
)

const (
	insertTodo = `INSERT INTO todos (title, position, completed) VALUES (?, ?, ?)
		RETURNING id, title, position, completed`
	selectTodo  = `SELECT id, title, position, completed FROM todos WHERE id = ?`
	selectTodos = `SELECT id, title, position, completed FROM todos ORDER BY position, id`
	deleteTodos = `DELETE FROM todos`
)

// Store is a SQLite-backed todo repository.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at cfg.Path, applies pending
// migrations and returns a ready Store. Use ":memory:" for a private
// throwaway database.
func Open(ctx context.Context, cfg config.SQLiteConfig) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// SQLite serializes writers, and an in-memory database lives only as long
	// as its single connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// dsn adds the pragmas the store relies on to a file path.
func dsn(path string) string {
	if path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)"
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading sqlite migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("creating sqlite migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("applying sqlite migrations: %w", err)
	}
	return nil
}

// Create inserts t and returns the stored row with its new ID.
func (s *Store) Create(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	var created todo.Todo
	err := s.db.QueryRowContext(ctx, insertTodo, t.Title, t.Order, t.Completed).
		Scan(&created.ID, &created.Title, &created.Order, &created.Completed)
	if err != nil {
		return nil, fmt.Errorf("inserting todo: %w", err)
	}
	return &created, nil
}

// FindByID returns the todo with the given ID.
func (s *Store) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	var t todo.Todo
	err := s.db.QueryRowContext(ctx, selectTodo, id).
		Scan(&t.ID, &t.Title, &t.Order, &t.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("selecting todo %d: %w", id, err)
	}
	return &t, nil
}

// FindAll returns every todo ordered by position, then ID.
func (s *Store) FindAll(ctx context.Context) ([]todo.Todo, error) {
	rows, err := s.db.QueryContext(ctx, selectTodos)
	if err != nil {
		return nil, fmt.Errorf("selecting todos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	todos := []todo.Todo{}
	for rows.Next() {
		var t todo.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Order, &t.Completed); err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

// DeleteAll removes every row. AUTOINCREMENT keeps IDs from being reused.
func (s *Store) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, deleteTodos); err != nil {
		return fmt.Errorf("deleting todos: %w", err)
	}
	return nil
}

// Name returns the health check identifier.
func (s *Store) Name() string {
	return Name
}

// HealthCheck pings the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Package postgres implements [ports.TodoRepository] on PostgreSQL. Queries
// run through a pgx connection pool; goose applies the embedded schema
// migrations over a short-lived database/sql handle using the pgx stdlib
// driver.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver for migrations
	"github.com/pressly/goose/v3"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/platform/config"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Name is the identifier the store registers under for health checks.
const Name = "postgres"

// Compile-time interface checks.
var (
	_ ports.TodoRepository = (*Store)(nil)
	_ ports.HealthChecker  = (*Store)(nil)
)

const (
	insertTodo = `INSERT INTO todos (title, position, completed) VALUES ($1, $2, $3)
		RETURNING id, title, position, completed`
	selectTodo  = `SELECT id, title, position, completed FROM todos WHERE id = $1`
	selectTodos = `SELECT id, title, position, completed FROM todos ORDER BY position, id`
	deleteTodos = `DELETE FROM todos`
)

// Store is a PostgreSQL-backed todo repository.
type Store struct {
	pool *pgxpool.Pool
}

// Open applies pending migrations, builds a connection pool from cfg and
// verifies connectivity.
func Open(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := migrate(ctx, cfg.DSN, logger); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	poolCfg.MaxConns = clampInt32(cfg.MaxConns)
	poolCfg.MinConns = clampInt32(cfg.MinConns)
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &Store{pool: pool}, nil
}

// migrate runs the embedded goose migrations. goose needs database/sql, so a
// separate handle is opened through the pgx stdlib driver and closed again.
func migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening postgres for migrations: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close migration connection",
				slog.String("operation", "postgres.migrate"),
				slog.Any("error", err),
			)
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging postgres for migrations: %w", err)
	}

	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading postgres migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("creating postgres migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying postgres migrations: %w", err)
	}
	for _, r := range results {
		logger.InfoContext(ctx, "applied migration",
			slog.String("operation", "postgres.migrate"),
			slog.String("source", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}

// Create inserts t and returns the stored row with its new ID.
func (s *Store) Create(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	rows, err := s.pool.Query(ctx, insertTodo, t.Title, t.Order, t.Completed)
	if err != nil {
		return nil, fmt.Errorf("inserting todo: %w", err)
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[todo.Todo])
	if err != nil {
		return nil, fmt.Errorf("inserting todo: %w", err)
	}
	return &created, nil
}

// FindByID returns the todo with the given ID.
func (s *Store) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	rows, err := s.pool.Query(ctx, selectTodo, id)
	if err != nil {
		return nil, fmt.Errorf("selecting todo %d: %w", id, err)
	}
	t, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[todo.Todo])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("selecting todo %d: %w", id, err)
	}
	return &t, nil
}

// FindAll returns every todo ordered by position, then ID.
func (s *Store) FindAll(ctx context.Context) ([]todo.Todo, error) {
	rows, err := s.pool.Query(ctx, selectTodos)
	if err != nil {
		return nil, fmt.Errorf("selecting todos: %w", err)
	}
	todos, err := pgx.CollectRows(rows, pgx.RowToStructByPos[todo.Todo])
	if err != nil {
		return nil, fmt.Errorf("collecting todos: %w", err)
	}
	if todos == nil {
		todos = []todo.Todo{}
	}
	return todos, nil
}

// DeleteAll removes every row. The identity column keeps IDs from being
// reused.
func (s *Store) DeleteAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, deleteTodos); err != nil {
		return fmt.Errorf("deleting todos: %w", err)
	}
	return nil
}

// Name returns the health check identifier.
func (s *Store) Name() string {
	return Name
}

// HealthCheck pings the pool.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}
	return nil
}

// Close closes every pooled connection.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// clampInt32 converts a non-negative pool size to int32, clamping at the
// int32 maximum.
func clampInt32(v int) int32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}

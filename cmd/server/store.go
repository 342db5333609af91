package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage/postgres"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen11/todo-backend/internal/platform/config"
	"github.com/jsamuelsen11/todo-backend/internal/platform/httpclient"
	"github.com/jsamuelsen11/todo-backend/internal/platform/metrics"
	"github.com/jsamuelsen11/todo-backend/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// todoStore is the opened repository for the configured driver. The checker
// and closer are nil when the driver has nothing to report or release.
type todoStore struct {
	repo    ports.TodoRepository
	driver  string
	checker ports.HealthChecker
	closer  io.Closer
}

// Close releases the underlying connection, if any.
func (s *todoStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Shutdown lets the injector close the store once the server, which depends
// on it, has drained.
func (s *todoStore) Shutdown(context.Context) error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("closing %s store: %w", s.driver, err)
	}
	return nil
}

// openStore opens the repository selected by cfg.Storage.Driver and wraps
// it with Prometheus, OpenTelemetry and tracing instrumentation.
func openStore(
	ctx context.Context,
	cfg *config.Config,
	otelMetrics *telemetry.Metrics,
	promMetrics *metrics.Metrics,
	logger *slog.Logger,
) (*todoStore, error) {
	s := &todoStore{driver: cfg.Storage.Driver}

	var repo ports.TodoRepository
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		repo = memory.New()
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLite)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		repo, s.checker, s.closer = db, db, db
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Storage.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		repo, s.checker, s.closer = db, db, db
	case config.DriverRemote:
		client := httpclient.New(&cfg.Client, acl.HealthName, otelMetrics, logger)
		remote := acl.NewTodoStore(client, logger)
		repo, s.checker = remote, remote
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	var observers []storage.Observer
	if promMetrics != nil {
		observers = append(observers, promMetrics)
	}
	if otelMetrics != nil {
		observers = append(observers, otelMetrics)
	}
	s.repo = storage.Instrument(repo, cfg.Storage.Driver, observers...)

	logger.InfoContext(ctx, "todo store opened", slog.String("driver", cfg.Storage.Driver))
	return s, nil
}

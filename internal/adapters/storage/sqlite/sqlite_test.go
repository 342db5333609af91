package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage/storagetest"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/platform/config"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

func openMemory(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.Open(context.Background(), config.SQLiteConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Contract(t *testing.T) {
	t.Parallel()

	storagetest.Run(t, func(t *testing.T) ports.TodoRepository {
		return openMemory(t)
	})
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "todo.db")}

	first, err := sqlite.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	created, err := first.Create(ctx, &todo.Todo{Title: "durable", Order: 2, Completed: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening re-runs migrations, which must be a no-op.
	second, err := sqlite.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() after reopen error = %v", err)
	}
	if *got != *created {
		t.Errorf("FindByID() = %+v, want %+v", *got, *created)
	}
}

func TestStore_HealthCheck(t *testing.T) {
	t.Parallel()

	s := openMemory(t)

	if s.Name() != "sqlite" {
		t.Errorf("Name() = %q, want %q", s.Name(), "sqlite")
	}
	if err := s.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() = %v, want nil", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() after Close = nil, want error")
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	t.Parallel()

	cfg := config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "missing", "dir", "todo.db")}
	if _, err := sqlite.Open(context.Background(), cfg); err == nil {
		t.Error("Open() with unwritable path succeeded, want error")
	}
}

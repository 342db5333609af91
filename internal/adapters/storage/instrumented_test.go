package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage"
	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/platform/metrics"
	"github.com/jsamuelsen11/todo-backend/mocks"
)

func TestInstrumented_RecordsResults(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockTodoRepository(t)
	repo.EXPECT().Create(mock.Anything, mock.Anything).Return(&todo.Todo{ID: 1, Title: "a"}, nil)
	repo.EXPECT().FindByID(mock.Anything, int64(9)).Return(nil, domain.ErrNotFound)
	repo.EXPECT().FindAll(mock.Anything).Return(nil, errors.New("disk on fire"))
	repo.EXPECT().DeleteAll(mock.Anything).Return(nil)

	m := metrics.New()
	store := storage.Instrument(repo, "memory", m)
	ctx := context.Background()

	created, err := store.Create(ctx, &todo.Todo{Title: "a"})
	if err != nil || created.ID != 1 {
		t.Fatalf("Create() = %+v, %v; want delegated result", created, err)
	}
	if _, err := store.FindByID(ctx, 9); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound passed through", err)
	}
	if _, err := store.FindAll(ctx); err == nil {
		t.Error("FindAll() error = nil, want delegated error")
	}
	if err := store.DeleteAll(ctx); err != nil {
		t.Errorf("DeleteAll() error = %v", err)
	}

	expected := `
# HELP todo_store_operations_total Total number of todo store operations by driver, operation and result.
# TYPE todo_store_operations_total counter
todo_store_operations_total{driver="memory",operation="create",result="ok"} 1
todo_store_operations_total{driver="memory",operation="delete_all",result="ok"} 1
todo_store_operations_total{driver="memory",operation="find_all",result="error"} 1
todo_store_operations_total{driver="memory",operation="find_by_id",result="not_found"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "todo_store_operations_total"); err != nil {
		t.Error(err)
	}
}

func TestInstrumented_NilObserver(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockTodoRepository(t)
	repo.EXPECT().FindAll(mock.Anything).Return([]todo.Todo{}, nil)

	store := storage.Instrument(repo, "sqlite", nil)

	got, err := store.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if got == nil {
		t.Error("FindAll() = nil, want delegated empty slice")
	}
}

type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) ObserveStoreOperation(driver, operation, result string, _ time.Duration) {
	o.calls = append(o.calls, driver+"/"+operation+"/"+result)
}

func TestInstrumented_FansOutToEveryObserver(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockTodoRepository(t)
	repo.EXPECT().FindByID(mock.Anything, int64(3)).Return(&todo.Todo{ID: 3}, nil)

	first, second := &recordingObserver{}, &recordingObserver{}
	store := storage.Instrument(repo, "postgres", first, nil, second)

	if _, err := store.FindByID(context.Background(), 3); err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}

	for i, o := range []*recordingObserver{first, second} {
		if len(o.calls) != 1 || o.calls[0] != "postgres/find_by_id/ok" {
			t.Errorf("observer %d calls = %v, want [postgres/find_by_id/ok]", i, o.calls)
		}
	}
}

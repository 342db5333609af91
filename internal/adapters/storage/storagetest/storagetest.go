// Package storagetest holds the behavioural checks every
// [ports.TodoRepository] implementation must pass. Adapter packages call
// [Run] from their own tests with a constructor for a fresh, empty store.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// Factory returns an empty repository. It is called once per subtest.
type Factory func(t *testing.T) ports.TodoRepository

// Run executes the repository contract against stores built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Helper()

	t.Run("create assigns unique non-zero ids", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		seen := make(map[int64]bool)
		for i := range 5 {
			created, err := repo.Create(ctx, &todo.Todo{Title: "item", Order: int64(i)})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if created.ID == 0 {
				t.Fatal("Create() returned id 0")
			}
			if seen[created.ID] {
				t.Fatalf("Create() reused id %d", created.ID)
			}
			seen[created.ID] = true
		}
	})

	t.Run("create ignores caller supplied id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Create(ctx, &todo.Todo{Title: "first"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		second, err := repo.Create(ctx, &todo.Todo{ID: first.ID, Title: "second"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if second.ID == first.ID {
			t.Errorf("Create() honoured caller id %d", first.ID)
		}
	})

	t.Run("find by id returns stored fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Create(ctx, &todo.Todo{Title: "TEST TITLE", Order: 7, Completed: true})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		got, err := repo.FindByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		want := todo.Todo{ID: created.ID, Title: "TEST TITLE", Order: 7, Completed: true}
		if *got != want {
			t.Errorf("FindByID() = %+v, want %+v", *got, want)
		}
	})

	t.Run("find by id on absent id is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByID(context.Background(), 123)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FindByID(123) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("find all on empty store is empty and non-nil", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if got == nil {
			t.Fatal("FindAll() = nil, want empty slice")
		}
		if len(got) != 0 {
			t.Errorf("len(FindAll()) = %d, want 0", len(got))
		}
	})

	t.Run("find all sorts by order then id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		var ids []int64
		for _, order := range []int64{3, 1, 3, 0} {
			created, err := repo.Create(ctx, &todo.Todo{Title: "t", Order: order})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			ids = append(ids, created.ID)
		}

		got, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		wantIDs := []int64{ids[3], ids[1], ids[0], ids[2]}
		if len(got) != len(wantIDs) {
			t.Fatalf("len(FindAll()) = %d, want %d", len(got), len(wantIDs))
		}
		for i, id := range wantIDs {
			if got[i].ID != id {
				t.Errorf("FindAll()[%d].ID = %d, want %d", i, got[i].ID, id)
			}
		}
	})

	t.Run("delete all empties the store and is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for range 3 {
			if _, err := repo.Create(ctx, &todo.Todo{Title: "t"}); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}

		for range 2 {
			if err := repo.DeleteAll(ctx); err != nil {
				t.Fatalf("DeleteAll() error = %v", err)
			}
		}

		got, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("len(FindAll()) after DeleteAll = %d, want 0", len(got))
		}
	})

	t.Run("ids are not reused after delete all", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		before, err := repo.Create(ctx, &todo.Todo{Title: "before"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := repo.DeleteAll(ctx); err != nil {
			t.Fatalf("DeleteAll() error = %v", err)
		}
		after, err := repo.Create(ctx, &todo.Todo{Title: "after"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if after.ID == before.ID {
			t.Errorf("id %d reused after DeleteAll", after.ID)
		}
	})

	t.Run("concurrent creates yield distinct ids", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		const workers = 20
		ids := make([]int64, workers)
		errs := make([]error, workers)

		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := repo.Create(ctx, &todo.Todo{Title: "c"})
				if err != nil {
					errs[i] = err
					return
				}
				ids[i] = created.ID
			}()
		}
		wg.Wait()

		seen := make(map[int64]bool, workers)
		for i, id := range ids {
			if errs[i] != nil {
				t.Fatalf("Create() error = %v", errs[i])
			}
			if seen[id] {
				t.Fatalf("duplicate id %d", id)
			}
			seen[id] = true
		}

		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if len(all) != workers {
			t.Errorf("len(FindAll()) = %d, want %d", len(all), workers)
		}
	})

	t.Run("canceled context is rejected", func(t *testing.T) {
		repo := newRepo(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := repo.Create(ctx, &todo.Todo{Title: "t"}); err == nil {
			t.Error("Create() with canceled context succeeded, want error")
		}
	})
}

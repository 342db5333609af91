package todo

import (
	"slices"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
		want Todo
	}{
		{
			name: "empty request uses defaults",
			req:  Request{},
			want: Todo{},
		},
		{
			name: "title only",
			req:  Request{Title: ptr("TEST TITLE")},
			want: Todo{Title: "TEST TITLE"},
		},
		{
			name: "all fields",
			req: Request{
				Title:     ptr("walk the dog"),
				Order:     ptr(int64(7)),
				Completed: ptr(true),
			},
			want: Todo{Title: "walk the dog", Order: 7, Completed: true},
		},
		{
			name: "explicit false completed",
			req:  Request{Completed: ptr(false)},
			want: Todo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := New(tt.req)
			if *got != tt.want {
				t.Errorf("New() = %+v, want %+v", *got, tt.want)
			}
			if got.ID != 0 {
				t.Errorf("New().ID = %d, want 0 (unsaved)", got.ID)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	todos := []Todo{
		{ID: 3, Order: 1},
		{ID: 1, Order: 2},
		{ID: 2, Order: 1},
		{ID: 4, Order: -5},
	}

	slices.SortFunc(todos, Compare)

	wantIDs := []int64{4, 2, 3, 1}
	for i, want := range wantIDs {
		if todos[i].ID != want {
			t.Errorf("todos[%d].ID = %d, want %d", i, todos[i].ID, want)
		}
	}
}

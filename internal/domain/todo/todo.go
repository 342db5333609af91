// Package todo defines the Todo entity and the request model used to create it.
package todo

import "cmp"

// Todo represents a single task item. ID is assigned by the repository when
// the todo is first persisted and never changes afterwards.
type Todo struct {
	ID        int64
	Title     string
	Order     int64
	Completed bool
}

// Request carries the client-supplied fields for a new Todo. Every field is
// optional; nil means "use the default".
type Request struct {
	Title     *string
	Order     *int64
	Completed *bool
}

// New builds an unsaved Todo from the request. Absent fields default to their
// zero values: empty title, order 0, not completed. The returned Todo has no ID.
func New(req Request) *Todo {
	t := &Todo{}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Order != nil {
		t.Order = *req.Order
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}
	return t
}

// Compare orders todos for listing: ascending Order, ties broken by ID.
// Suitable for slices.SortFunc.
func Compare(a, b Todo) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

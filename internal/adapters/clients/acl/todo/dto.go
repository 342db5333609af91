// Package todo implements the Anti-Corruption Layer translators between the
// upstream todo-backend's JSON representation and the domain todo entity.
package todo

// TodoDTO matches the upstream entity schema.
type TodoDTO struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Order     int64  `json:"order"`
	Completed bool   `json:"completed"`
}

// CreateTodoRequestDTO matches the upstream request schema. Every field is
// sent explicitly so the upstream applies no defaults of its own.
type CreateTodoRequestDTO struct {
	Title     string `json:"title"`
	Order     int64  `json:"order"`
	Completed bool   `json:"completed"`
}

package dto

import "github.com/jsamuelsen11/todo-backend/internal/domain/todo"

// TodoRequest represents the JSON body for creating a todo. Every field is
// optional; absent or null fields take the domain defaults. Any "id" sent by
// the client is ignored because the struct has no field for it.
type TodoRequest struct {
	Title     *string `json:"title"`
	Order     *int64  `json:"order"`
	Completed *bool   `json:"completed"`
}

// ToDomain converts the request into the domain creation input.
func (r *TodoRequest) ToDomain() todo.Request {
	return todo.Request{
		Title:     r.Title,
		Order:     r.Order,
		Completed: r.Completed,
	}
}

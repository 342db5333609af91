// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import "github.com/jsamuelsen11/todo-backend/internal/domain/todo"

// TodoResponse represents a single todo in HTTP responses.
type TodoResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Order     int64  `json:"order"`
	Completed bool   `json:"completed"`
}

// ToTodoResponse converts a domain Todo to an HTTP response DTO.
func ToTodoResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Order:     t.Order,
		Completed: t.Completed,
	}
}

// ToTodoListResponse converts todos to the bare JSON array returned by
// GET /. The result is never nil, so an empty list encodes as [].
func ToTodoListResponse(todos []todo.Todo) []TodoResponse {
	items := make([]TodoResponse, len(todos))
	for i := range todos {
		items[i] = ToTodoResponse(&todos[i])
	}
	return items
}

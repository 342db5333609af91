package todo

import (
	domaintodo "github.com/jsamuelsen11/todo-backend/internal/domain/todo"
)

// ToDomainTodo converts an upstream TodoDTO to a domain Todo.
func ToDomainTodo(dto *TodoDTO) domaintodo.Todo {
	return domaintodo.Todo{
		ID:        dto.ID,
		Title:     dto.Title,
		Order:     dto.Order,
		Completed: dto.Completed,
	}
}

// ToDomainTodoList converts the upstream list response. A nil or empty input
// yields an empty, non-nil slice.
func ToDomainTodoList(dtos []TodoDTO) []domaintodo.Todo {
	todos := make([]domaintodo.Todo, len(dtos))
	for i := range dtos {
		todos[i] = ToDomainTodo(&dtos[i])
	}
	return todos
}

// ToCreateTodoRequest converts a domain Todo to the upstream create payload.
// The ID is never sent; the upstream assigns its own.
func ToCreateTodoRequest(t *domaintodo.Todo) CreateTodoRequestDTO {
	return CreateTodoRequestDTO{
		Title:     t.Title,
		Order:     t.Order,
		Completed: t.Completed,
	}
}

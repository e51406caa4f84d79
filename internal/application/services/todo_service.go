package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

func nowTimestamp() string {
	return time.Now().Format(time.RFC3339)
}

// TodoService handles todo operations
type TodoService struct {
	todoRepo ports.TodoRepository
	logger   *logger.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(todoRepo ports.TodoRepository, logger *logger.Logger) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		logger:   logger,
	}
}

// CreateTodo creates a new todo
func (s *TodoService) CreateTodo(ctx context.Context, req ports.CreateTodoRequest) (*entities.Todo, error) {
	todo := &entities.Todo{
		Title:     req.Title,
		Details:   req.Details,
		Completed: req.Completed,
		CreatedAt: nowTimestamp(),
	}
	if todo.Completed {
		todo.CompletedAt = nowTimestamp()
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Info("Todo created", "todo_id", todo.ID, "title", todo.Title)

	return todo, nil
}

// ListTodos returns all todos.
func (s *TodoService) ListTodos(ctx context.Context) ([]*entities.Todo, error) {
	todos, err := s.todoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// UpdateTodo applies a sparse patch: only fields present in the request body
// change, so toggling completed alone never erases title or details.
// Completing stamps completed_at; un-completing clears it.
func (s *TodoService) UpdateTodo(ctx context.Context, id int, patch ports.TodoPatch) (*entities.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title.Set {
		todo.Title = patch.Title.Value
	}
	if patch.Details.Set {
		// An explicit null clears details; Value is "" in that case.
		todo.Details = patch.Details.Value
	}
	if patch.Completed.Set {
		todo.Completed = patch.Completed.Value
		if todo.Completed {
			todo.CompletedAt = nowTimestamp()
		} else {
			todo.CompletedAt = ""
		}
	}

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}

	s.logger.Info("Todo updated", "todo_id", todo.ID)

	return todo, nil
}

// DeleteTodo removes a todo.
func (s *TodoService) DeleteTodo(ctx context.Context, id int) error {
	if err := s.todoRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Todo deleted", "todo_id", id)

	return nil
}

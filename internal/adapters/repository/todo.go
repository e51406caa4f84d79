package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/database"
	"github.com/lifedesk/core/internal/ports"
)

const todoSchema = `
	CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		completed INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`

// TodoRepositoryImpl implements the TodoRepository interface
type TodoRepositoryImpl struct {
	store *database.Store
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(store *database.Store) ports.TodoRepository {
	return &TodoRepositoryImpl{store: store}
}

func (r *TodoRepositoryImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.store.DB.ExecContext(ctx, todoSchema); err != nil {
		return fmt.Errorf("ensure todos schema: %w", err)
	}
	return nil
}

func (r *TodoRepositoryImpl) Create(ctx context.Context, todo *entities.Todo) error {
	query := `
		INSERT INTO todos (title, details, completed, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?)`

	return withSchema(ctx, r.EnsureSchema, func() error {
		res, err := r.store.DB.ExecContext(ctx, query,
			todo.Title, todo.Details, todo.Completed, todo.CompletedAt, todo.CreatedAt)
		if err != nil {
			return fmt.Errorf("create todo: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("create todo: %w", err)
		}
		todo.ID = int(id)
		return nil
	})
}

func (r *TodoRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Todo, error) {
	query := `
		SELECT id, title, details, completed, completed_at, created_at
		FROM todos WHERE id = ?`

	var todo entities.Todo
	err := withSchema(ctx, r.EnsureSchema, func() error {
		return r.store.DB.GetContext(ctx, &todo, query, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get todo %d: %w", id, entities.ErrTodoNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}

	return &todo, nil
}

func (r *TodoRepositoryImpl) Update(ctx context.Context, todo *entities.Todo) error {
	query := `
		UPDATE todos
		SET title = ?, details = ?, completed = ?, completed_at = ?
		WHERE id = ?`

	return withSchema(ctx, r.EnsureSchema, func() error {
		res, err := r.store.DB.ExecContext(ctx, query,
			todo.Title, todo.Details, todo.Completed, todo.CompletedAt, todo.ID)
		if err != nil {
			return fmt.Errorf("update todo %d: %w", todo.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("update todo %d: %w", todo.ID, entities.ErrTodoNotFound)
		}
		return nil
	})
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, id int) error {
	return withSchema(ctx, r.EnsureSchema, func() error {
		res, err := r.store.DB.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete todo %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("delete todo %d: %w", id, entities.ErrTodoNotFound)
		}
		return nil
	})
}

func (r *TodoRepositoryImpl) List(ctx context.Context) ([]*entities.Todo, error) {
	query := `
		SELECT id, title, details, completed, completed_at, created_at
		FROM todos ORDER BY id`

	todos := []*entities.Todo{}
	err := withSchema(ctx, r.EnsureSchema, func() error {
		return r.store.DB.SelectContext(ctx, &todos, query)
	})
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

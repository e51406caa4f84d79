package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifedesk/core/internal/application/services"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

// TodoHandler handles todo requests
type TodoHandler struct {
	todoService *services.TodoService
	logger      *logger.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService *services.TodoService, logger *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(c echo.Context) error {
	todos, err := h.todoService.ListTodos(c.Request().Context())
	if err != nil {
		h.logger.Error("List todos failed", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, todos)
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	var req ports.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create todo failed", "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, todo)
}

// UpdateTodo handles PUT /todos/:id with a sparse patch.
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	raw, err := decodeRawBody(c)
	if err != nil {
		return err
	}

	var patch ports.TodoPatch
	for key, value := range raw {
		switch key {
		case "title":
			var title string
			if err := json.Unmarshal(value, &title); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "title must be a string")
			}
			patch.Title = ports.Present(title)
		case "details":
			// Explicit null clears details; omission leaves them alone.
			var details string
			if !isJSONNull(value) {
				if err := json.Unmarshal(value, &details); err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "details must be a string")
				}
			}
			patch.Details = ports.Present(details)
		case "completed":
			var completed bool
			if err := json.Unmarshal(value, &completed); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "completed must be a boolean")
			}
			patch.Completed = ports.Present(completed)
		}
	}

	todo, err := h.todoService.UpdateTodo(c.Request().Context(), id, patch)
	if err != nil {
		h.logger.Error("Update todo failed", "error", err, "todo_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo handles DELETE /todos/:id
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.todoService.DeleteTodo(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete todo failed", "error", err, "todo_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Deleted"})
}

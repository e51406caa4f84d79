package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifedesk/core/internal/domain/entities"
)

func TestTodoCreateAndList(t *testing.T) {
	e := newTodoRouter(t)

	var created entities.Todo
	rec := request(t, e, http.MethodPost, "/todos", `{"title":"buy milk","details":"oat"}`, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "buy milk", created.Title)

	var todos []entities.Todo
	rec = request(t, e, http.MethodGet, "/todos", "", &todos)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, todos, 1)
	assert.Equal(t, created.ID, todos[0].ID)
}

func TestTodoCreateRequiresTitle(t *testing.T) {
	e := newTodoRouter(t)

	rec := request(t, e, http.MethodPost, "/todos", `{"details":"no title"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodoUpdateIsSparse(t *testing.T) {
	e := newTodoRouter(t)

	var created entities.Todo
	request(t, e, http.MethodPost, "/todos", `{"title":"buy milk","details":"oat"}`, &created)

	// Only completed sent: title and details survive.
	var updated entities.Todo
	rec := request(t, e, http.MethodPut, fmt.Sprintf("/todos/%d", created.ID), `{"completed":true}`, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "buy milk", updated.Title)
	assert.Equal(t, "oat", updated.Details)
	assert.True(t, updated.Completed)

	// Explicit null clears details.
	rec = request(t, e, http.MethodPut, fmt.Sprintf("/todos/%d", created.ID), `{"details":null}`, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, updated.Details)
	assert.Equal(t, "buy milk", updated.Title)
}

func TestTodoUpdateUnknownID(t *testing.T) {
	e := newTodoRouter(t)

	rec := request(t, e, http.MethodPut, "/todos/999", `{"title":"ghost"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(t, e, http.MethodPut, "/todos/abc", `{"title":"ghost"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodoDelete(t *testing.T) {
	e := newTodoRouter(t)

	var created entities.Todo
	request(t, e, http.MethodPost, "/todos", `{"title":"temp"}`, &created)

	rec := request(t, e, http.MethodDelete, fmt.Sprintf("/todos/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, e, http.MethodDelete, fmt.Sprintf("/todos/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifedesk/core/internal/domain/entities"
)

func TestBookmarkCreateNormalizesURL(t *testing.T) {
	e := newBookmarkRouter(t)

	var created entities.Bookmark
	rec := request(t, e, http.MethodPost, "/bookmarks", `{"name":"example","url":"example.com"}`, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "https://example.com", created.URL)
}

func TestBookmarkCreateRequiresURL(t *testing.T) {
	e := newBookmarkRouter(t)

	rec := request(t, e, http.MethodPost, "/bookmarks", `{"name":"nowhere"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarkTagsAcceptListOrCSV(t *testing.T) {
	e := newBookmarkRouter(t)

	var asList entities.Bookmark
	rec := request(t, e, http.MethodPost, "/bookmarks",
		`{"url":"a.example.com","tags":["go","http"]}`, &asList)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"go", "http"}, asList.Tags)

	var asCSV entities.Bookmark
	rec = request(t, e, http.MethodPost, "/bookmarks",
		`{"url":"b.example.com","tags":"go, http , "}`, &asCSV)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"go", "http"}, asCSV.Tags)

	rec = request(t, e, http.MethodPost, "/bookmarks",
		`{"url":"c.example.com","tags":7}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarkUpdateSparsePatch(t *testing.T) {
	e := newBookmarkRouter(t)

	var created entities.Bookmark
	request(t, e, http.MethodPost, "/bookmarks",
		`{"name":"example","url":"example.com","tags":["old"]}`, &created)

	var updated entities.Bookmark
	rec := request(t, e, http.MethodPut, fmt.Sprintf("/bookmarks/%d", created.ID),
		`{"tags":"new,fresh"}`, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"new", "fresh"}, updated.Tags)
	assert.Equal(t, "example", updated.Name)
	assert.Equal(t, "https://example.com", updated.URL)
}

func TestBookmarkUpdateUnknownID(t *testing.T) {
	e := newBookmarkRouter(t)

	rec := request(t, e, http.MethodPut, "/bookmarks/404", `{"name":"ghost"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookmarkDelete(t *testing.T) {
	e := newBookmarkRouter(t)

	var created entities.Bookmark
	request(t, e, http.MethodPost, "/bookmarks", `{"url":"example.com"}`, &created)

	rec := request(t, e, http.MethodDelete, fmt.Sprintf("/bookmarks/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, e, http.MethodDelete, fmt.Sprintf("/bookmarks/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifedesk/core/internal/application/services"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

// BookmarkHandler handles bookmark requests
type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
	logger          *logger.Logger
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(bookmarkService *services.BookmarkService, logger *logger.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
		logger:          logger,
	}
}

// ListBookmarks handles GET /bookmarks
func (h *BookmarkHandler) ListBookmarks(c echo.Context) error {
	bookmarks, err := h.bookmarkService.ListBookmarks(c.Request().Context())
	if err != nil {
		h.logger.Error("List bookmarks failed", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, bookmarks)
}

// CreateBookmark handles POST /bookmarks. Tags are accepted as either a JSON
// list or a comma-separated string; bare URLs get an https:// prefix.
func (h *BookmarkHandler) CreateBookmark(c echo.Context) error {
	raw, err := decodeRawBody(c)
	if err != nil {
		return err
	}

	var req ports.CreateBookmarkRequest
	if value, ok := raw["name"]; ok && !isJSONNull(value) {
		if err := json.Unmarshal(value, &req.Name); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "name must be a string")
		}
	}
	if value, ok := raw["url"]; ok && !isJSONNull(value) {
		if err := json.Unmarshal(value, &req.URL); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "url must be a string")
		}
	}
	if value, ok := raw["tags"]; ok {
		tags, err := parseTags(value)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		req.Tags = tags
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bookmark, err := h.bookmarkService.CreateBookmark(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create bookmark failed", "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, bookmark)
}

// UpdateBookmark handles PUT /bookmarks/:bid with a sparse patch.
func (h *BookmarkHandler) UpdateBookmark(c echo.Context) error {
	id, err := pathID(c, "bid")
	if err != nil {
		return err
	}

	raw, err := decodeRawBody(c)
	if err != nil {
		return err
	}

	var patch ports.BookmarkPatch
	for key, value := range raw {
		switch key {
		case "name":
			var name string
			if !isJSONNull(value) {
				if err := json.Unmarshal(value, &name); err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "name must be a string")
				}
			}
			patch.Name = ports.Present(name)
		case "url":
			var url string
			if err := json.Unmarshal(value, &url); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "url must be a string")
			}
			patch.URL = ports.Present(url)
		case "tags":
			tags, err := parseTags(value)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			patch.Tags = ports.Present(tags)
		}
	}

	bookmark, err := h.bookmarkService.UpdateBookmark(c.Request().Context(), id, patch)
	if err != nil {
		h.logger.Error("Update bookmark failed", "error", err, "bookmark_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, bookmark)
}

// DeleteBookmark handles DELETE /bookmarks/:bid
func (h *BookmarkHandler) DeleteBookmark(c echo.Context) error {
	id, err := pathID(c, "bid")
	if err != nil {
		return err
	}

	if err := h.bookmarkService.DeleteBookmark(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete bookmark failed", "error", err, "bookmark_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Deleted"})
}

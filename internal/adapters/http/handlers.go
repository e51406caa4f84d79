package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lifedesk/core/internal/domain/entities"
)

// MessageResponse is the generic confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a client-facing error message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// pathID parses the integer id path parameter.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid %s parameter", name))
	}
	return id, nil
}

// decodeRawBody reads the request body into a key-to-raw-JSON map so the
// handler knows exactly which fields the caller sent. That presence set is
// what makes sparse patches sparse: omitted and explicitly-null fields are
// not the same thing.
func decodeRawBody(c echo.Context) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	return raw, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// parseTags accepts tags as either a JSON list or a comma-separated string
// and normalizes them to a list.
func parseTags(raw json.RawMessage) ([]string, error) {
	if isJSONNull(raw) {
		return []string{}, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var csv string
	if err := json.Unmarshal(raw, &csv); err != nil {
		return nil, fmt.Errorf("tags must be a list or a comma-separated string")
	}

	tags := []string{}
	for _, tag := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags, nil
}

// domainError maps domain sentinels onto HTTP status codes; anything else
// bubbles up to the central error handler as a 500.
func domainError(err error) error {
	switch {
	case errors.Is(err, entities.ErrTodoNotFound),
		errors.Is(err, entities.ErrReminderNotFound),
		errors.Is(err, entities.ErrBookmarkNotFound),
		errors.Is(err, entities.ErrEntryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrInvalidDueTime),
		errors.Is(err, entities.ErrInvalidRecordType),
		errors.Is(err, entities.ErrInvalidBalance):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lifedesk/core/internal/application/services"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

// StatusHandler handles server-health report requests
type StatusHandler struct {
	statusService *services.StatusService
	logger        *logger.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(statusService *services.StatusService, logger *logger.Logger) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
		logger:        logger,
	}
}

// statusKnownFields are consumed into the typed request; everything else
// lands in the open-ended extra map.
var statusKnownFields = map[string]bool{
	"server_name":  true,
	"service_name": true,
	"content":      true,
	"is_success":   true,
	"time":         true,
}

// SubmitReport handles POST /server/status.
func (h *StatusHandler) SubmitReport(c echo.Context) error {
	raw, err := decodeRawBody(c)
	if err != nil {
		return err
	}

	req := ports.SubmitStatusRequest{Extra: map[string]any{}}

	stringField := func(name string, dst *string) error {
		value, ok := raw[name]
		if !ok || isJSONNull(value) {
			return nil
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, name+" must be a string")
		}
		return nil
	}
	for name, dst := range map[string]*string{
		"server_name":  &req.ServerName,
		"service_name": &req.ServiceName,
		"content":      &req.Content,
		"time":         &req.Time,
	} {
		if err := stringField(name, dst); err != nil {
			return err
		}
	}

	value, ok := raw["is_success"]
	if !ok || isJSONNull(value) {
		return echo.NewHTTPError(http.StatusBadRequest, "is_success is required")
	}
	success, err := parseIsSuccess(value)
	if err != nil {
		return err
	}
	req.IsSuccess = success

	for key, value := range raw {
		if statusKnownFields[key] {
			continue
		}
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			continue
		}
		req.Extra[key] = decoded
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.statusService.SubmitReport(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Submit status report failed", "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// parseIsSuccess accepts a JSON boolean or a case-insensitive "true"/"false"
// string; anything else is a 400.
func parseIsSuccess(raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, echo.NewHTTPError(http.StatusBadRequest, "is_success must be a boolean or \"true\"/\"false\"")
}

// ListReports handles GET /server/status with optional server_name filter
// and result-count limit (default 100), newest-received first.
func (h *StatusHandler) ListReports(c echo.Context) error {
	filter := ports.StatusReportFilter{
		ServerName: c.QueryParam("server_name"),
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
		}
		filter.Limit = limit
	}

	reports, err := h.statusService.ListReports(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("List status reports failed", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

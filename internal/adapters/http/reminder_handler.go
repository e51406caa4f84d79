package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifedesk/core/internal/application/services"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

// ReminderHandler handles reminder requests
type ReminderHandler struct {
	reminderService *services.ReminderService
	logger          *logger.Logger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderService *services.ReminderService, logger *logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger,
	}
}

// ListReminders handles GET /reminders; listing also runs the lazy legacy
// migration pass inside the service.
func (h *ReminderHandler) ListReminders(c echo.Context) error {
	reminders, err := h.reminderService.ListReminders(c.Request().Context())
	if err != nil {
		h.logger.Error("List reminders failed", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, reminders)
}

// CreateReminder handles POST /reminders
func (h *ReminderHandler) CreateReminder(c echo.Context) error {
	var req ports.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reminder, err := h.reminderService.CreateReminder(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create reminder failed", "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, reminder)
}

// UpdateReminder handles PUT /reminders/:rid with a sparse patch. A malformed
// due_time here is a 400, unlike the lenient creation path.
func (h *ReminderHandler) UpdateReminder(c echo.Context) error {
	id, err := pathID(c, "rid")
	if err != nil {
		return err
	}

	raw, err := decodeRawBody(c)
	if err != nil {
		return err
	}

	patch, err := reminderPatchFromRaw(raw)
	if err != nil {
		return err
	}

	reminder, err := h.reminderService.UpdateReminder(c.Request().Context(), id, patch)
	if err != nil {
		h.logger.Error("Update reminder failed", "error", err, "reminder_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, reminder)
}

func reminderPatchFromRaw(raw map[string]json.RawMessage) (ports.ReminderPatch, error) {
	var patch ports.ReminderPatch

	stringField := func(value json.RawMessage, name string) (string, error) {
		var s string
		if isJSONNull(value) {
			return "", nil
		}
		if err := json.Unmarshal(value, &s); err != nil {
			return "", echo.NewHTTPError(http.StatusBadRequest, name+" must be a string")
		}
		return s, nil
	}

	for key, value := range raw {
		switch key {
		case "service", "content", "type", "due_time", "cycle_mode":
			s, err := stringField(value, key)
			if err != nil {
				return patch, err
			}
			switch key {
			case "service":
				patch.Service = ports.Present(s)
			case "content":
				patch.Content = ports.Present(s)
			case "type":
				patch.Type = ports.Present(s)
			case "due_time":
				patch.DueTime = ports.Present(s)
			case "cycle_mode":
				patch.CycleMode = ports.Present(s)
			}
		case "processed", "recurring":
			var b bool
			if err := json.Unmarshal(value, &b); err != nil {
				return patch, echo.NewHTTPError(http.StatusBadRequest, key+" must be a boolean")
			}
			if key == "processed" {
				patch.Processed = ports.Present(b)
			} else {
				patch.Recurring = ports.Present(b)
			}
		case "advance_days", "cycle_days":
			var n int
			if err := json.Unmarshal(value, &n); err != nil {
				return patch, echo.NewHTTPError(http.StatusBadRequest, key+" must be an integer")
			}
			if key == "advance_days" {
				patch.AdvanceDays = ports.Present(n)
			} else {
				patch.CycleDays = ports.Present(n)
			}
		}
	}

	return patch, nil
}

// MarkProcessed handles PUT /reminders/:rid/processed
func (h *ReminderHandler) MarkProcessed(c echo.Context) error {
	id, err := pathID(c, "rid")
	if err != nil {
		return err
	}

	reminder, err := h.reminderService.MarkProcessed(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("Mark reminder processed failed", "error", err, "reminder_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, reminder)
}

// DeleteReminder handles DELETE /reminders/:rid
func (h *ReminderHandler) DeleteReminder(c echo.Context) error {
	id, err := pathID(c, "rid")
	if err != nil {
		return err
	}

	if err := h.reminderService.DeleteReminder(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete reminder failed", "error", err, "reminder_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Deleted"})
}

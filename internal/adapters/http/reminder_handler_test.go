package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifedesk/core/internal/adapters/repository"
	"github.com/lifedesk/core/internal/application/services"
	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/logger"
)

func newReminderRouter(t *testing.T) *echo.Echo {
	t.Helper()
	svc := services.NewReminderService(repository.NewReminderRepository(newTestStore(t)), logger.NewNop())
	h := NewReminderHandler(svc, logger.NewNop())

	e := newTestEcho()
	e.GET("/reminders", h.ListReminders)
	e.POST("/reminders", h.CreateReminder)
	e.PUT("/reminders/:rid", h.UpdateReminder)
	e.PUT("/reminders/:rid/processed", h.MarkProcessed)
	e.DELETE("/reminders/:rid", h.DeleteReminder)
	return e
}

func TestReminderCreateDefaults(t *testing.T) {
	e := newReminderRouter(t)

	var created entities.Reminder
	rec := request(t, e, http.MethodPost, "/reminders",
		`{"content":"water the plants","recurring":true}`, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, entities.Today(), created.DueTime)
	assert.Equal(t, entities.CycleDaily, created.CycleMode)
}

func TestReminderCreateRequiresContent(t *testing.T) {
	e := newReminderRouter(t)

	rec := request(t, e, http.MethodPost, "/reminders", `{"service":"cron"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReminderUpdateRejectsBadDueTime(t *testing.T) {
	e := newReminderRouter(t)

	var created entities.Reminder
	request(t, e, http.MethodPost, "/reminders", `{"content":"pay rent"}`, &created)

	// Creation was lenient about dates; the explicit update path is not.
	rec := request(t, e, http.MethodPut, fmt.Sprintf("/reminders/%d", created.ID),
		`{"due_time":"next tuesday"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var updated entities.Reminder
	rec = request(t, e, http.MethodPut, fmt.Sprintf("/reminders/%d", created.ID),
		`{"due_time":"2030-06-15","advance_days":5}`, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2030-06-15", updated.DueTime)
	assert.Equal(t, "2030-06-10", updated.RemindTime)
}

func TestReminderMarkProcessed(t *testing.T) {
	e := newReminderRouter(t)

	var oneShot entities.Reminder
	request(t, e, http.MethodPost, "/reminders", `{"content":"one thing"}`, &oneShot)

	var done entities.Reminder
	rec := request(t, e, http.MethodPut, fmt.Sprintf("/reminders/%d/processed", oneShot.ID), "", &done)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, done.Processed)

	var weekly entities.Reminder
	request(t, e, http.MethodPost, "/reminders",
		`{"content":"weekly review","due_time":"2024-03-10","recurring":true,"cycle_mode":"weekly"}`, &weekly)

	var advanced entities.Reminder
	rec = request(t, e, http.MethodPut, fmt.Sprintf("/reminders/%d/processed", weekly.ID), "", &advanced)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-03-17", advanced.DueTime)
	assert.False(t, advanced.Processed)

	rec = request(t, e, http.MethodPut, "/reminders/999/processed", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReminderDelete(t *testing.T) {
	e := newReminderRouter(t)

	var created entities.Reminder
	request(t, e, http.MethodPost, "/reminders", `{"content":"temp"}`, &created)

	rec := request(t, e, http.MethodDelete, fmt.Sprintf("/reminders/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, e, http.MethodDelete, fmt.Sprintf("/reminders/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

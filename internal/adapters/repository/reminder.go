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

const reminderSchema = `
	CREATE TABLE IF NOT EXISTS reminders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		service TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'once',
		processed INTEGER NOT NULL DEFAULT 0,
		due_time TEXT NOT NULL DEFAULT '',
		remind_time TEXT NOT NULL DEFAULT '',
		advance_days INTEGER NOT NULL DEFAULT 0,
		recurring INTEGER NOT NULL DEFAULT 0,
		cycle_mode TEXT NOT NULL DEFAULT '',
		cycle_days INTEGER NOT NULL DEFAULT 0,
		last_completed_date TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`

// ReminderRepositoryImpl implements the ReminderRepository interface
type ReminderRepositoryImpl struct {
	store *database.Store
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(store *database.Store) ports.ReminderRepository {
	return &ReminderRepositoryImpl{store: store}
}

func (r *ReminderRepositoryImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.store.DB.ExecContext(ctx, reminderSchema); err != nil {
		return fmt.Errorf("ensure reminders schema: %w", err)
	}
	return nil
}

func (r *ReminderRepositoryImpl) Create(ctx context.Context, reminder *entities.Reminder) error {
	query := `
		INSERT INTO reminders (service, content, type, processed, due_time, remind_time,
			advance_days, recurring, cycle_mode, cycle_days, last_completed_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return withSchema(ctx, r.EnsureSchema, func() error {
		res, err := r.store.DB.ExecContext(ctx, query,
			reminder.Service, reminder.Content, reminder.Type, reminder.Processed,
			reminder.DueTime, reminder.RemindTime, reminder.AdvanceDays, reminder.Recurring,
			reminder.CycleMode, reminder.CycleDays, reminder.LastCompletedDate, reminder.CreatedAt)
		if err != nil {
			return fmt.Errorf("create reminder: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("create reminder: %w", err)
		}
		reminder.ID = int(id)
		return nil
	})
}

func (r *ReminderRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Reminder, error) {
	query := `
		SELECT id, service, content, type, processed, due_time, remind_time,
			advance_days, recurring, cycle_mode, cycle_days, last_completed_date, created_at
		FROM reminders WHERE id = ?`

	var reminder entities.Reminder
	err := withSchema(ctx, r.EnsureSchema, func() error {
		return r.store.DB.GetContext(ctx, &reminder, query, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get reminder %d: %w", id, entities.ErrReminderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get reminder %d: %w", id, err)
	}

	return &reminder, nil
}

func (r *ReminderRepositoryImpl) Update(ctx context.Context, reminder *entities.Reminder) error {
	query := `
		UPDATE reminders
		SET service = ?, content = ?, type = ?, processed = ?, due_time = ?, remind_time = ?,
			advance_days = ?, recurring = ?, cycle_mode = ?, cycle_days = ?, last_completed_date = ?
		WHERE id = ?`

	return withSchema(ctx, r.EnsureSchema, func() error {
		res, err := r.store.DB.ExecContext(ctx, query,
			reminder.Service, reminder.Content, reminder.Type, reminder.Processed,
			reminder.DueTime, reminder.RemindTime, reminder.AdvanceDays, reminder.Recurring,
			reminder.CycleMode, reminder.CycleDays, reminder.LastCompletedDate, reminder.ID)
		if err != nil {
			return fmt.Errorf("update reminder %d: %w", reminder.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("update reminder %d: %w", reminder.ID, entities.ErrReminderNotFound)
		}
		return nil
	})
}

func (r *ReminderRepositoryImpl) Delete(ctx context.Context, id int) error {
	return withSchema(ctx, r.EnsureSchema, func() error {
		res, err := r.store.DB.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete reminder %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("delete reminder %d: %w", id, entities.ErrReminderNotFound)
		}
		return nil
	})
}

func (r *ReminderRepositoryImpl) List(ctx context.Context) ([]*entities.Reminder, error) {
	query := `
		SELECT id, service, content, type, processed, due_time, remind_time,
			advance_days, recurring, cycle_mode, cycle_days, last_completed_date, created_at
		FROM reminders ORDER BY id DESC`

	reminders := []*entities.Reminder{}
	err := withSchema(ctx, r.EnsureSchema, func() error {
		return r.store.DB.SelectContext(ctx, &reminders, query)
	})
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	return reminders, nil
}

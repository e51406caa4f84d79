package services

import (
	"context"
	"fmt"

	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

// ReminderService owns the reminder lifecycle: creation defaults, lazy
// migration of legacy rows, sparse patches, and recurrence advancement.
type ReminderService struct {
	reminderRepo ports.ReminderRepository
	logger       *logger.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(reminderRepo ports.ReminderRepository, logger *logger.Logger) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		logger:       logger,
	}
}

// CreateReminder creates a new reminder, defaulting due_time to today and the
// cycle mode to daily for recurring drafts.
//
// Date parsing here is deliberately lenient: an unparseable due_time is
// swallowed and replaced with today. The explicit-update path rejects the
// same input with a hard error; the two paths must stay asymmetric because
// callers depend on the observed behavior.
func (s *ReminderService) CreateReminder(ctx context.Context, req ports.CreateReminderRequest) (*entities.Reminder, error) {
	today := entities.Today()

	due := today
	if req.DueTime != "" {
		parsed, err := entities.ParseCalendarDate(req.DueTime)
		if err != nil {
			s.logger.Warnw("Unparseable due_time on create, falling back to today",
				"due_time", req.DueTime)
		} else {
			due = entities.FormatDate(parsed)
		}
	}

	advance := 0
	if req.AdvanceDays != nil {
		advance = *req.AdvanceDays
	}

	cycleMode := entities.CycleMode(req.CycleMode)
	if req.Recurring && cycleMode == "" {
		cycleMode = entities.CycleDaily
	}

	reminder := &entities.Reminder{
		Service:     req.Service,
		Content:     req.Content,
		Type:        entities.ReminderTypeOnce,
		DueTime:     due,
		RemindTime:  entities.AddDays(due, -advance),
		AdvanceDays: advance,
		Recurring:   req.Recurring,
		CycleMode:   cycleMode,
		CycleDays:   req.CycleDays,
		CreatedAt:   today,
	}

	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	s.logger.Info("Reminder created", "reminder_id", reminder.ID, "due_time", reminder.DueTime)

	return reminder, nil
}

// ListReminders returns all reminders, first migrating any legacy rows in
// place. The migration is idempotent: already-normalized rows pass through
// untouched on every subsequent list.
func (s *ReminderService) ListReminders(ctx context.Context) ([]*entities.Reminder, error) {
	reminders, err := s.reminderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	for _, reminder := range reminders {
		if !reminder.NeedsMigration() {
			continue
		}
		s.migrate(reminder)
		if err := s.reminderRepo.Update(ctx, reminder); err != nil {
			return nil, fmt.Errorf("failed to persist migrated reminder %d: %w", reminder.ID, err)
		}
		s.logger.Info("Migrated legacy reminder", "reminder_id", reminder.ID)
	}

	return reminders, nil
}

// migrate normalizes a legacy type="daily" row into the recurring shape and
// backfills a missing due date on recurring rows.
func (s *ReminderService) migrate(reminder *entities.Reminder) {
	if reminder.Type == entities.ReminderTypeDaily {
		reminder.Type = entities.ReminderTypeOnce
		reminder.Recurring = true
		reminder.CycleMode = entities.CycleDaily
	}
	if reminder.DueTime == "" {
		reminder.DueTime = entities.Today()
	}
	if reminder.RemindTime == "" {
		reminder.RemindTime = entities.AddDays(reminder.DueTime, -reminder.AdvanceDays)
	}
}

// UpdateReminder applies a sparse patch. A due_time present in the patch is
// reparsed; here a parse failure is a hard error, unlike creation.
func (s *ReminderService) UpdateReminder(ctx context.Context, id int, patch ports.ReminderPatch) (*entities.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Service.Set {
		reminder.Service = patch.Service.Value
	}
	if patch.Content.Set {
		reminder.Content = patch.Content.Value
	}
	if patch.Type.Set {
		reminder.Type = entities.ReminderType(patch.Type.Value)
	}
	if patch.Processed.Set {
		reminder.Processed = patch.Processed.Value
	}
	if patch.AdvanceDays.Set {
		reminder.AdvanceDays = patch.AdvanceDays.Value
	}
	if patch.Recurring.Set {
		reminder.Recurring = patch.Recurring.Value
	}
	if patch.CycleMode.Set {
		reminder.CycleMode = entities.CycleMode(patch.CycleMode.Value)
	}
	if patch.CycleDays.Set {
		reminder.CycleDays = patch.CycleDays.Value
	}
	if patch.DueTime.Set {
		parsed, err := entities.ParseCalendarDate(patch.DueTime.Value)
		if err != nil {
			return nil, fmt.Errorf("due_time %q: %w", patch.DueTime.Value, entities.ErrInvalidDueTime)
		}
		reminder.DueTime = entities.FormatDate(parsed)
		// Recompute against the advance window that may have just changed.
		reminder.RemindTime = entities.AddDays(reminder.DueTime, -reminder.AdvanceDays)
	}

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}

	s.logger.Info("Reminder updated", "reminder_id", reminder.ID)

	return reminder, nil
}

// MarkProcessed completes the current occurrence. Non-recurring reminders
// become terminal. Recurring daily reminders land on tomorrow regardless of
// how stale the due date is, so missed days never compound. Every other mode
// advances exactly one cycle from the stored due date even when that leaves
// the reminder in the past (catch-up semantics).
func (s *ReminderService) MarkProcessed(ctx context.Context, id int) (*entities.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	today := entities.Today()
	reminder.LastCompletedDate = today

	if !reminder.Recurring {
		reminder.Processed = true
	} else {
		if reminder.CycleMode == entities.CycleDaily {
			reminder.DueTime = entities.AddDays(today, 1)
		} else {
			base := reminder.DueTime
			if base == "" {
				base = today
			}
			baseDate, err := entities.ParseCalendarDate(base)
			if err != nil {
				return nil, fmt.Errorf("stored due_time %q: %w", base, entities.ErrInvalidDueTime)
			}
			next := entities.NextDue(reminder.CycleMode, reminder.CycleDays, baseDate)
			reminder.DueTime = entities.FormatDate(next)
		}
		reminder.RemindTime = entities.AddDays(reminder.DueTime, -reminder.AdvanceDays)
		// The task reopens for its next occurrence.
		reminder.Processed = false
	}

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}

	s.logger.Info("Reminder processed", "reminder_id", reminder.ID,
		"recurring", reminder.Recurring, "due_time", reminder.DueTime)

	return reminder, nil
}

// DeleteReminder physically removes a reminder.
func (s *ReminderService) DeleteReminder(ctx context.Context, id int) error {
	if err := s.reminderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Reminder deleted", "reminder_id", id)

	return nil
}

package entities

import (
	"errors"
)

// Common errors
var (
	ErrTodoNotFound      = errors.New("todo not found")
	ErrReminderNotFound  = errors.New("reminder not found")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrEntryNotFound     = errors.New("ledger entry not found")
	ErrInvalidDueTime    = errors.New("invalid due_time")
	ErrInvalidRecordType = errors.New("invalid record_type")
	ErrInvalidBalance    = errors.New("invalid balance kind")
)

// ReminderType distinguishes one-shot reminders from the legacy daily tag.
type ReminderType string

const (
	ReminderTypeOnce ReminderType = "once"
	// ReminderTypeDaily only appears in legacy rows; list normalizes it away.
	ReminderTypeDaily ReminderType = "daily"
)

// CycleMode is the recurrence rule tag governing next-due computation.
type CycleMode string

const (
	CycleDaily      CycleMode = "daily"
	CycleWeekly     CycleMode = "weekly"
	CycleMonthly    CycleMode = "monthly"
	CycleMonthStart CycleMode = "month_start"
	CycleYearly     CycleMode = "yearly"
	CycleDays       CycleMode = "days"
)

// RecordType tags a ledger entry with its effect on the balances.
type RecordType string

const (
	RecordIncome  RecordType = "income"
	RecordExpense RecordType = "expense"
	RecordDebtIn  RecordType = "debt_in"
	RecordDebtOut RecordType = "debt_out"
)

// IsValid reports whether rt belongs to the closed record-type set.
func (rt RecordType) IsValid() bool {
	switch rt {
	case RecordIncome, RecordExpense, RecordDebtIn, RecordDebtOut:
		return true
	default:
		return false
	}
}

// BalanceKind names one of the two singleton aggregates.
type BalanceKind string

const (
	BalanceAsset     BalanceKind = "asset"
	BalanceLiability BalanceKind = "liability"
)

// Todo represents a plain keyed task record.
//
// Calendar dates are carried as YYYY-MM-DD strings and timestamps as RFC 3339
// strings throughout the entities; the empty string means "not set".
type Todo struct {
	ID          int    `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Details     string `json:"details" db:"details"`
	Completed   bool   `json:"completed" db:"completed"`
	CompletedAt string `json:"completed_at" db:"completed_at"`
	CreatedAt   string `json:"created_at" db:"created_at"`
}

// Reminder represents a one-shot or recurring reminder.
type Reminder struct {
	ID                int          `json:"id" db:"id"`
	Service           string       `json:"service" db:"service"`
	Content           string       `json:"content" db:"content"`
	Type              ReminderType `json:"type" db:"type"`
	Processed         bool         `json:"processed" db:"processed"`
	DueTime           string       `json:"due_time" db:"due_time"`
	RemindTime        string       `json:"remind_time" db:"remind_time"`
	AdvanceDays       int          `json:"advance_days" db:"advance_days"`
	Recurring         bool         `json:"recurring" db:"recurring"`
	CycleMode         CycleMode    `json:"cycle_mode" db:"cycle_mode"`
	CycleDays         int          `json:"cycle_days" db:"cycle_days"`
	LastCompletedDate string       `json:"last_completed_date" db:"last_completed_date"`
	CreatedAt         string       `json:"created_at" db:"created_at"`
}

// Bookmark represents a stored link. Tags live as a JSON array in storage and
// are materialized by the repository.
type Bookmark struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
}

// StatusReport is the most recent health report for a (server, service) pair.
type StatusReport struct {
	ID          int            `json:"id"`
	ServerName  string         `json:"server_name"`
	ServiceName string         `json:"service_name"`
	Content     string         `json:"content"`
	IsSuccess   bool           `json:"is_success"`
	Time        string         `json:"time"`
	Extra       map[string]any `json:"extra"`
	ReceivedAt  string         `json:"received_at"`
}

// LedgerEntry is a single financial record feeding the balance engine.
type LedgerEntry struct {
	ID         int        `json:"id" db:"id"`
	Item       string     `json:"item" db:"item"`
	Amount     float64    `json:"amount" db:"amount"`
	Interest   float64    `json:"interest" db:"interest"`
	RecordType RecordType `json:"record_type" db:"record_type"`
	RecordDate string     `json:"record_date" db:"record_date"`
	Category   string     `json:"category" db:"category"`
	Notes      string     `json:"notes" db:"notes"`
	CreatedAt  string     `json:"created_at" db:"created_at"`
}

// Balance is one of the two running aggregates (asset, liability), fixed id 1.
type Balance struct {
	ID        int     `json:"id" db:"id"`
	Amount    float64 `json:"amount" db:"amount"`
	UpdatedAt string  `json:"updated_at" db:"updated_at"`
}

// Effect returns the signed deltas this entry applies to the asset and
// liability aggregates. Reversal is the same pair negated.
func (e *LedgerEntry) Effect() (asset, liability float64) {
	switch e.RecordType {
	case RecordIncome:
		return e.Amount, 0
	case RecordExpense:
		return -e.Amount, 0
	case RecordDebtIn:
		return e.Amount, e.Amount
	case RecordDebtOut:
		return -(e.Amount + e.Interest), -e.Amount
	default:
		return 0, 0
	}
}

// NeedsMigration reports whether a reminder row still carries the legacy
// daily shape or is recurring without a due date.
func (r *Reminder) NeedsMigration() bool {
	if r.Type == ReminderTypeDaily {
		return true
	}
	return r.Recurring && r.DueTime == ""
}

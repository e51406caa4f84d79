package ports

import (
	"context"

	"github.com/lifedesk/core/internal/domain/entities"
)

// TodoRepository defines the interface for todo data operations
type TodoRepository interface {
	Create(ctx context.Context, todo *entities.Todo) error
	GetByID(ctx context.Context, id int) (*entities.Todo, error)
	Update(ctx context.Context, todo *entities.Todo) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*entities.Todo, error)
	EnsureSchema(ctx context.Context) error
}

// ReminderRepository defines the interface for reminder data operations
type ReminderRepository interface {
	Create(ctx context.Context, reminder *entities.Reminder) error
	GetByID(ctx context.Context, id int) (*entities.Reminder, error)
	Update(ctx context.Context, reminder *entities.Reminder) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*entities.Reminder, error)
	EnsureSchema(ctx context.Context) error
}

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *entities.Bookmark) error
	GetByID(ctx context.Context, id int) (*entities.Bookmark, error)
	Update(ctx context.Context, bookmark *entities.Bookmark) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*entities.Bookmark, error)
	EnsureSchema(ctx context.Context) error
}

// StatusReportFilter narrows status-report listing.
type StatusReportFilter struct {
	ServerName string
	Limit      int
}

// StatusReportRepository defines the interface for server-status operations.
// Upsert replaces the stored row matching the (server_name, service_name)
// natural key, or inserts a new one.
type StatusReportRepository interface {
	Upsert(ctx context.Context, report *entities.StatusReport) error
	List(ctx context.Context, filter StatusReportFilter) ([]*entities.StatusReport, error)
	EnsureSchema(ctx context.Context) error
}

// LedgerRepository defines the interface for ledger and balance operations.
//
// The mutating entry operations run inside one store transaction so the
// read-modify-write against the asset/liability singletons cannot interleave
// with a concurrent ledger write. The effect deltas are computed by the
// caller (the balance engine) and applied atomically with the row change.
type LedgerRepository interface {
	ListEntries(ctx context.Context) ([]*entities.LedgerEntry, error)
	GetEntry(ctx context.Context, id int) (*entities.LedgerEntry, error)

	// CreateEntry inserts the entry and applies (assetDelta, liabilityDelta)
	// to the aggregates in the same transaction.
	CreateEntry(ctx context.Context, entry *entities.LedgerEntry, assetDelta, liabilityDelta float64) error

	// UpdateEntry loads the stored entry, hands it to apply, and persists the
	// returned replacement together with the returned aggregate deltas, all
	// in one transaction. apply sees the pre-update row.
	UpdateEntry(ctx context.Context, id int, apply func(stored *entities.LedgerEntry) (*entities.LedgerEntry, float64, float64, error)) (*entities.LedgerEntry, error)

	// DeleteEntry removes the row and applies the deltas returned by reverse
	// for the stored entry, in one transaction.
	DeleteEntry(ctx context.Context, id int, reverse func(stored *entities.LedgerEntry) (float64, float64)) error

	// GetBalance lazily materializes the singleton with amount 0 if absent.
	GetBalance(ctx context.Context, kind entities.BalanceKind) (*entities.Balance, error)
	SetBalance(ctx context.Context, kind entities.BalanceKind, amount float64) (*entities.Balance, error)

	EnsureSchema(ctx context.Context) error
}

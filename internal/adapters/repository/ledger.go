package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/database"
	"github.com/lifedesk/core/internal/ports"
)

// The ledger store holds the entries table plus the two singleton aggregate
// tables. All three live in the same file so one transaction covers an entry
// mutation together with its balance effects.
var ledgerSchema = []string{
	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item TEXT NOT NULL,
		amount REAL NOT NULL DEFAULT 0,
		interest REAL NOT NULL DEFAULT 0,
		record_type TEXT NOT NULL,
		record_date TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS asset (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		amount REAL NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS liability (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		amount REAL NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,
}

// LedgerRepositoryImpl implements the LedgerRepository interface
type LedgerRepositoryImpl struct {
	store *database.Store
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(store *database.Store) ports.LedgerRepository {
	return &LedgerRepositoryImpl{store: store}
}

func (r *LedgerRepositoryImpl) EnsureSchema(ctx context.Context) error {
	for _, stmt := range ledgerSchema {
		if _, err := r.store.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure ledger schema: %w", err)
		}
	}
	return nil
}

func balanceTable(kind entities.BalanceKind) (string, error) {
	switch kind {
	case entities.BalanceAsset:
		return "asset", nil
	case entities.BalanceLiability:
		return "liability", nil
	default:
		return "", fmt.Errorf("balance %q: %w", kind, entities.ErrInvalidBalance)
	}
}

// getBalanceTx reads a singleton inside a transaction, materializing it with
// amount 0 when the row is absent.
func getBalanceTx(ctx context.Context, tx *sqlx.Tx, kind entities.BalanceKind) (*entities.Balance, error) {
	table, err := balanceTable(kind)
	if err != nil {
		return nil, err
	}

	var balance entities.Balance
	err = tx.GetContext(ctx, &balance, `SELECT id, amount, updated_at FROM `+table+` WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		balance = entities.Balance{ID: 1, Amount: 0, UpdatedAt: time.Now().Format(time.RFC3339)}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+table+` (id, amount, updated_at) VALUES (1, 0, ?)`, balance.UpdatedAt); err != nil {
			return nil, fmt.Errorf("materialize %s: %w", table, err)
		}
		return &balance, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	return &balance, nil
}

// applyDeltasTx shifts both aggregates and refreshes their updated_at.
func applyDeltasTx(ctx context.Context, tx *sqlx.Tx, assetDelta, liabilityDelta float64) error {
	now := time.Now().Format(time.RFC3339)
	for _, b := range []struct {
		kind  entities.BalanceKind
		delta float64
	}{
		{entities.BalanceAsset, assetDelta},
		{entities.BalanceLiability, liabilityDelta},
	} {
		if _, err := getBalanceTx(ctx, tx, b.kind); err != nil {
			return err
		}
		table, _ := balanceTable(b.kind)
		if _, err := tx.ExecContext(ctx,
			`UPDATE `+table+` SET amount = amount + ?, updated_at = ? WHERE id = 1`, b.delta, now); err != nil {
			return fmt.Errorf("apply delta to %s: %w", table, err)
		}
	}
	return nil
}

// withLedgerTx wraps fn in a transaction, creating the schema and retrying
// once when the tables are missing.
func (r *LedgerRepositoryImpl) withLedgerTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	err := r.store.WithTx(ctx, fn)
	if !database.IsMissingTable(err) {
		return err
	}
	if serr := r.EnsureSchema(ctx); serr != nil {
		return serr
	}
	return r.store.WithTx(ctx, fn)
}

func (r *LedgerRepositoryImpl) ListEntries(ctx context.Context) ([]*entities.LedgerEntry, error) {
	query := `
		SELECT id, item, amount, interest, record_type, record_date, category, notes, created_at
		FROM ledger_entries ORDER BY record_date DESC, id DESC`

	entries := []*entities.LedgerEntry{}
	err := withSchema(ctx, r.EnsureSchema, func() error {
		return r.store.DB.SelectContext(ctx, &entries, query)
	})
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}

	return entries, nil
}

func (r *LedgerRepositoryImpl) GetEntry(ctx context.Context, id int) (*entities.LedgerEntry, error) {
	query := `
		SELECT id, item, amount, interest, record_type, record_date, category, notes, created_at
		FROM ledger_entries WHERE id = ?`

	var entry entities.LedgerEntry
	err := withSchema(ctx, r.EnsureSchema, func() error {
		return r.store.DB.GetContext(ctx, &entry, query, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ledger entry %d: %w", id, entities.ErrEntryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ledger entry %d: %w", id, err)
	}

	return &entry, nil
}

func getEntryTx(ctx context.Context, tx *sqlx.Tx, id int) (*entities.LedgerEntry, error) {
	var entry entities.LedgerEntry
	err := tx.GetContext(ctx, &entry, `
		SELECT id, item, amount, interest, record_type, record_date, category, notes, created_at
		FROM ledger_entries WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ledger entry %d: %w", id, entities.ErrEntryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ledger entry %d: %w", id, err)
	}
	return &entry, nil
}

func (r *LedgerRepositoryImpl) CreateEntry(ctx context.Context, entry *entities.LedgerEntry, assetDelta, liabilityDelta float64) error {
	return r.withLedgerTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO ledger_entries (item, amount, interest, record_type, record_date, category, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.Item, entry.Amount, entry.Interest, entry.RecordType,
			entry.RecordDate, entry.Category, entry.Notes, entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("create ledger entry: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("create ledger entry: %w", err)
		}
		entry.ID = int(id)

		return applyDeltasTx(ctx, tx, assetDelta, liabilityDelta)
	})
}

func (r *LedgerRepositoryImpl) UpdateEntry(ctx context.Context, id int, apply func(stored *entities.LedgerEntry) (*entities.LedgerEntry, float64, float64, error)) (*entities.LedgerEntry, error) {
	var updated *entities.LedgerEntry
	err := r.withLedgerTx(ctx, func(tx *sqlx.Tx) error {
		stored, err := getEntryTx(ctx, tx, id)
		if err != nil {
			return err
		}

		replacement, assetDelta, liabilityDelta, err := apply(stored)
		if err != nil {
			return err
		}
		replacement.ID = stored.ID
		replacement.CreatedAt = stored.CreatedAt

		if _, err := tx.ExecContext(ctx, `
			UPDATE ledger_entries
			SET item = ?, amount = ?, interest = ?, record_type = ?, record_date = ?, category = ?, notes = ?
			WHERE id = ?`,
			replacement.Item, replacement.Amount, replacement.Interest, replacement.RecordType,
			replacement.RecordDate, replacement.Category, replacement.Notes, replacement.ID); err != nil {
			return fmt.Errorf("update ledger entry %d: %w", id, err)
		}

		if err := applyDeltasTx(ctx, tx, assetDelta, liabilityDelta); err != nil {
			return err
		}

		updated = replacement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *LedgerRepositoryImpl) DeleteEntry(ctx context.Context, id int, reverse func(stored *entities.LedgerEntry) (float64, float64)) error {
	return r.withLedgerTx(ctx, func(tx *sqlx.Tx) error {
		stored, err := getEntryTx(ctx, tx, id)
		if err != nil {
			return err
		}

		assetDelta, liabilityDelta := reverse(stored)

		if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_entries WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete ledger entry %d: %w", id, err)
		}

		return applyDeltasTx(ctx, tx, assetDelta, liabilityDelta)
	})
}

func (r *LedgerRepositoryImpl) GetBalance(ctx context.Context, kind entities.BalanceKind) (*entities.Balance, error) {
	var balance *entities.Balance
	err := r.withLedgerTx(ctx, func(tx *sqlx.Tx) error {
		b, err := getBalanceTx(ctx, tx, kind)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

func (r *LedgerRepositoryImpl) SetBalance(ctx context.Context, kind entities.BalanceKind, amount float64) (*entities.Balance, error) {
	table, err := balanceTable(kind)
	if err != nil {
		return nil, err
	}

	var balance *entities.Balance
	err = r.withLedgerTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := getBalanceTx(ctx, tx, kind); err != nil {
			return err
		}
		now := time.Now().Format(time.RFC3339)
		if _, err := tx.ExecContext(ctx,
			`UPDATE `+table+` SET amount = ?, updated_at = ? WHERE id = 1`, amount, now); err != nil {
			return fmt.Errorf("overwrite %s: %w", table, err)
		}
		balance = &entities.Balance{ID: 1, Amount: amount, UpdatedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

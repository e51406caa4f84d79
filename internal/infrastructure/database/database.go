package database

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/lifedesk/core/internal/infrastructure/config"
)

// Store wraps one collection's sqlx.DB handle. Every collection gets its own
// independent SQLite file; there are no cross-store foreign keys.
type Store struct {
	DB   *sqlx.DB
	path string
}

// Open opens (creating if needed) a single SQLite store.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}

	// SQLite allows one writer; a single pooled connection also keeps
	// :memory: stores coherent under test.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping store %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		return nil, fmt.Errorf("failed to configure store %s: %w", path, err)
	}

	return &Store{DB: db, path: path}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// Ping pings the store.
func (s *Store) Ping() error {
	return s.DB.Ping()
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// WithTx executes a function within a transaction. The transaction boundary
// is what serializes read-modify-write sequences against the balance
// singletons.
func (s *Store) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsMissingTable reports whether err is SQLite's "no such table" condition,
// the trigger for lazy schema creation.
func IsMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// Stores bundles the five independent collection stores.
type Stores struct {
	Todos     *Store
	Reminders *Store
	Bookmarks *Store
	Status    *Store
	Ledger    *Store
}

// OpenAll opens every collection store under the configured data directory.
func OpenAll(cfg config.StorageConfig) (*Stores, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	stores := &Stores{}
	opened := []struct {
		dst  **Store
		file string
	}{
		{&stores.Todos, cfg.TodoFile},
		{&stores.Reminders, cfg.ReminderFile},
		{&stores.Bookmarks, cfg.BookmarkFile},
		{&stores.Status, cfg.StatusFile},
		{&stores.Ledger, cfg.LedgerFile},
	}

	for _, o := range opened {
		store, err := Open(cfg.Path(o.file))
		if err != nil {
			stores.Close()
			return nil, err
		}
		*o.dst = store
	}

	return stores, nil
}

// Close closes every open store.
func (s *Stores) Close() error {
	var firstErr error
	for _, store := range s.all() {
		if store == nil {
			continue
		}
		if err := store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// HealthCheck pings every store.
func (s *Stores) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, store := range s.all() {
		if err := store.DB.PingContext(ctx); err != nil {
			return fmt.Errorf("store %s health check failed: %w", store.path, err)
		}
	}
	return nil
}

func (s *Stores) all() []*Store {
	return []*Store{s.Todos, s.Reminders, s.Bookmarks, s.Status, s.Ledger}
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/database"
	"github.com/lifedesk/core/internal/ports"
)

const statusSchema = `
	CREATE TABLE IF NOT EXISTS status_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		server_name TEXT NOT NULL,
		service_name TEXT NOT NULL,
		content TEXT NOT NULL,
		is_success INTEGER NOT NULL,
		time TEXT NOT NULL,
		extra TEXT NOT NULL DEFAULT '{}',
		received_at TEXT NOT NULL,
		UNIQUE (server_name, service_name)
	)`

type statusRow struct {
	ID          int    `db:"id"`
	ServerName  string `db:"server_name"`
	ServiceName string `db:"service_name"`
	Content     string `db:"content"`
	IsSuccess   bool   `db:"is_success"`
	Time        string `db:"time"`
	Extra       string `db:"extra"`
	ReceivedAt  string `db:"received_at"`
}

func (row *statusRow) toEntity() (*entities.StatusReport, error) {
	extra := map[string]any{}
	if row.Extra != "" {
		if err := json.Unmarshal([]byte(row.Extra), &extra); err != nil {
			return nil, fmt.Errorf("decode status report %d extra: %w", row.ID, err)
		}
	}
	return &entities.StatusReport{
		ID:          row.ID,
		ServerName:  row.ServerName,
		ServiceName: row.ServiceName,
		Content:     row.Content,
		IsSuccess:   row.IsSuccess,
		Time:        row.Time,
		Extra:       extra,
		ReceivedAt:  row.ReceivedAt,
	}, nil
}

// StatusReportRepositoryImpl implements the StatusReportRepository interface
type StatusReportRepositoryImpl struct {
	store *database.Store
}

// NewStatusReportRepository creates a new server-status repository
func NewStatusReportRepository(store *database.Store) ports.StatusReportRepository {
	return &StatusReportRepositoryImpl{store: store}
}

func (r *StatusReportRepositoryImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.store.DB.ExecContext(ctx, statusSchema); err != nil {
		return fmt.Errorf("ensure status schema: %w", err)
	}
	return nil
}

// Upsert replaces the row matching (server_name, service_name) or inserts a
// new one; a repeat report never produces a second row.
func (r *StatusReportRepositoryImpl) Upsert(ctx context.Context, report *entities.StatusReport) error {
	extra := report.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	rawExtra, err := json.Marshal(extra)
	if err != nil {
		return fmt.Errorf("encode status report extra: %w", err)
	}

	query := `
		INSERT INTO status_reports (server_name, service_name, content, is_success, time, extra, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (server_name, service_name) DO UPDATE SET
			content = excluded.content,
			is_success = excluded.is_success,
			time = excluded.time,
			extra = excluded.extra,
			received_at = excluded.received_at`

	return r.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		run := func() error {
			if _, err := tx.ExecContext(ctx, query,
				report.ServerName, report.ServiceName, report.Content,
				report.IsSuccess, report.Time, string(rawExtra), report.ReceivedAt); err != nil {
				return fmt.Errorf("upsert status report: %w", err)
			}
			return tx.GetContext(ctx, &report.ID,
				`SELECT id FROM status_reports WHERE server_name = ? AND service_name = ?`,
				report.ServerName, report.ServiceName)
		}
		err := run()
		if !database.IsMissingTable(err) {
			return err
		}
		if _, serr := tx.ExecContext(ctx, statusSchema); serr != nil {
			return fmt.Errorf("ensure status schema: %w", serr)
		}
		return run()
	})
}

func (r *StatusReportRepositoryImpl) List(ctx context.Context, filter ports.StatusReportFilter) ([]*entities.StatusReport, error) {
	query := `
		SELECT id, server_name, service_name, content, is_success, time, extra, received_at
		FROM status_reports`
	args := []any{}

	if filter.ServerName != "" {
		query += ` WHERE server_name = ?`
		args = append(args, filter.ServerName)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` ORDER BY received_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows := []statusRow{}
	err := withSchema(ctx, r.EnsureSchema, func() error {
		return r.store.DB.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list status reports: %w", err)
	}

	reports := make([]*entities.StatusReport, 0, len(rows))
	for i := range rows {
		report, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

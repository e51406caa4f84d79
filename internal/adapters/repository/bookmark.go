package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/database"
	"github.com/lifedesk/core/internal/ports"
)

const bookmarkSchema = `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	)`

// bookmarkRow is the storage shape; tags are a JSON array column.
type bookmarkRow struct {
	ID        int    `db:"id"`
	Name      string `db:"name"`
	URL       string `db:"url"`
	Tags      string `db:"tags"`
	CreatedAt string `db:"created_at"`
}

func (row *bookmarkRow) toEntity() (*entities.Bookmark, error) {
	tags := []string{}
	if row.Tags != "" {
		if err := json.Unmarshal([]byte(row.Tags), &tags); err != nil {
			return nil, fmt.Errorf("decode bookmark %d tags: %w", row.ID, err)
		}
	}
	return &entities.Bookmark{
		ID:        row.ID,
		Name:      row.Name,
		URL:       row.URL,
		Tags:      tags,
		CreatedAt: row.CreatedAt,
	}, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode bookmark tags: %w", err)
	}
	return string(raw), nil
}

// BookmarkRepositoryImpl implements the BookmarkRepository interface
type BookmarkRepositoryImpl struct {
	store *database.Store
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(store *database.Store) ports.BookmarkRepository {
	return &BookmarkRepositoryImpl{store: store}
}

func (r *BookmarkRepositoryImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.store.DB.ExecContext(ctx, bookmarkSchema); err != nil {
		return fmt.Errorf("ensure bookmarks schema: %w", err)
	}
	return nil
}

func (r *BookmarkRepositoryImpl) Create(ctx context.Context, bookmark *entities.Bookmark) error {
	tags, err := encodeTags(bookmark.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO bookmarks (name, url, tags, created_at) VALUES (?, ?, ?, ?)`

	return withSchema(ctx, r.EnsureSchema, func() error {
		res, err := r.store.DB.ExecContext(ctx, query,
			bookmark.Name, bookmark.URL, tags, bookmark.CreatedAt)
		if err != nil {
			return fmt.Errorf("create bookmark: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("create bookmark: %w", err)
		}
		bookmark.ID = int(id)
		return nil
	})
}

func (r *BookmarkRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Bookmark, error) {
	query := `SELECT id, name, url, tags, created_at FROM bookmarks WHERE id = ?`

	var row bookmarkRow
	err := withSchema(ctx, r.EnsureSchema, func() error {
		return r.store.DB.GetContext(ctx, &row, query, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get bookmark %d: %w", id, entities.ErrBookmarkNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark %d: %w", id, err)
	}

	return row.toEntity()
}

func (r *BookmarkRepositoryImpl) Update(ctx context.Context, bookmark *entities.Bookmark) error {
	tags, err := encodeTags(bookmark.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE bookmarks SET name = ?, url = ?, tags = ? WHERE id = ?`

	return withSchema(ctx, r.EnsureSchema, func() error {
		res, err := r.store.DB.ExecContext(ctx, query,
			bookmark.Name, bookmark.URL, tags, bookmark.ID)
		if err != nil {
			return fmt.Errorf("update bookmark %d: %w", bookmark.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("update bookmark %d: %w", bookmark.ID, entities.ErrBookmarkNotFound)
		}
		return nil
	})
}

func (r *BookmarkRepositoryImpl) Delete(ctx context.Context, id int) error {
	return withSchema(ctx, r.EnsureSchema, func() error {
		res, err := r.store.DB.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete bookmark %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("delete bookmark %d: %w", id, entities.ErrBookmarkNotFound)
		}
		return nil
	})
}

func (r *BookmarkRepositoryImpl) List(ctx context.Context) ([]*entities.Bookmark, error) {
	query := `SELECT id, name, url, tags, created_at FROM bookmarks ORDER BY id`

	rows := []bookmarkRow{}
	err := withSchema(ctx, r.EnsureSchema, func() error {
		return r.store.DB.SelectContext(ctx, &rows, query)
	})
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	bookmarks := make([]*entities.Bookmark, 0, len(rows))
	for i := range rows {
		bookmark, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, bookmark)
	}
	return bookmarks, nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

// BookmarkService handles bookmark operations
type BookmarkService struct {
	bookmarkRepo ports.BookmarkRepository
	logger       *logger.Logger
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(bookmarkRepo ports.BookmarkRepository, logger *logger.Logger) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		logger:       logger,
	}
}

// NormalizeURL prefixes bare URLs with https://; URLs that already carry an
// explicit scheme are stored unchanged.
func NormalizeURL(url string) string {
	if url == "" {
		return url
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}

// CreateBookmark creates a new bookmark with a normalized URL.
func (s *BookmarkService) CreateBookmark(ctx context.Context, req ports.CreateBookmarkRequest) (*entities.Bookmark, error) {
	bookmark := &entities.Bookmark{
		Name:      req.Name,
		URL:       NormalizeURL(req.URL),
		Tags:      req.Tags,
		CreatedAt: nowTimestamp(),
	}
	if bookmark.Tags == nil {
		bookmark.Tags = []string{}
	}

	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}

	s.logger.Info("Bookmark created", "bookmark_id", bookmark.ID, "url", bookmark.URL)

	return bookmark, nil
}

// ListBookmarks returns all bookmarks.
func (s *BookmarkService) ListBookmarks(ctx context.Context) ([]*entities.Bookmark, error) {
	bookmarks, err := s.bookmarkRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// UpdateBookmark applies a sparse patch; a patched URL is re-normalized.
func (s *BookmarkService) UpdateBookmark(ctx context.Context, id int, patch ports.BookmarkPatch) (*entities.Bookmark, error) {
	bookmark, err := s.bookmarkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name.Set {
		bookmark.Name = patch.Name.Value
	}
	if patch.URL.Set {
		bookmark.URL = NormalizeURL(patch.URL.Value)
	}
	if patch.Tags.Set {
		bookmark.Tags = patch.Tags.Value
		if bookmark.Tags == nil {
			bookmark.Tags = []string{}
		}
	}

	if err := s.bookmarkRepo.Update(ctx, bookmark); err != nil {
		return nil, err
	}

	s.logger.Info("Bookmark updated", "bookmark_id", bookmark.ID)

	return bookmark, nil
}

// DeleteBookmark removes a bookmark.
func (s *BookmarkService) DeleteBookmark(ctx context.Context, id int) error {
	if err := s.bookmarkRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Bookmark deleted", "bookmark_id", id)

	return nil
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifedesk/core/internal/adapters/repository"
	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

func newBookmarkFixture(t *testing.T) *BookmarkService {
	t.Helper()
	repo := repository.NewBookmarkRepository(newTestStore(t))
	return NewBookmarkService(repo, logger.NewNop())
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com", NormalizeURL("example.com"))
	assert.Equal(t, "https://example.com", NormalizeURL("https://example.com"))
	assert.Equal(t, "http://example.com", NormalizeURL("http://example.com"))
	assert.Equal(t, "", NormalizeURL(""))
}

func TestCreateBookmarkPrefixesBareURL(t *testing.T) {
	svc := newBookmarkFixture(t)

	bookmark, err := svc.CreateBookmark(context.Background(), ports.CreateBookmarkRequest{
		Name: "example",
		URL:  "example.com/page",
		Tags: []string{"reading"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page", bookmark.URL)
	assert.Equal(t, []string{"reading"}, bookmark.Tags)
}

func TestCreateBookmarkDefaultsTags(t *testing.T) {
	svc := newBookmarkFixture(t)

	bookmark, err := svc.CreateBookmark(context.Background(), ports.CreateBookmarkRequest{
		URL: "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{}, bookmark.Tags)
}

func TestUpdateBookmarkRenormalizesURL(t *testing.T) {
	svc := newBookmarkFixture(t)
	ctx := context.Background()

	bookmark, err := svc.CreateBookmark(ctx, ports.CreateBookmarkRequest{URL: "https://old.example.com"})
	require.NoError(t, err)

	updated, err := svc.UpdateBookmark(ctx, bookmark.ID, ports.BookmarkPatch{
		URL: ports.Present("new.example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://new.example.com", updated.URL)

	// Patching the URL alone keeps the rest of the record.
	tagged, err := svc.UpdateBookmark(ctx, bookmark.ID, ports.BookmarkPatch{
		Tags: ports.Present([]string{"work", "infra"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://new.example.com", tagged.URL)
	assert.Equal(t, []string{"work", "infra"}, tagged.Tags)
}

func TestBookmarkRoundTripPersistsTags(t *testing.T) {
	svc := newBookmarkFixture(t)
	ctx := context.Background()

	created, err := svc.CreateBookmark(ctx, ports.CreateBookmarkRequest{
		URL:  "https://example.com",
		Tags: []string{"a", "b"},
	})
	require.NoError(t, err)

	bookmarks, err := svc.ListBookmarks(ctx)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, created.ID, bookmarks[0].ID)
	assert.Equal(t, []string{"a", "b"}, bookmarks[0].Tags)
}

func TestDeleteBookmark(t *testing.T) {
	svc := newBookmarkFixture(t)
	ctx := context.Background()

	bookmark, err := svc.CreateBookmark(ctx, ports.CreateBookmarkRequest{URL: "https://example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBookmark(ctx, bookmark.ID))
	assert.ErrorIs(t, svc.DeleteBookmark(ctx, bookmark.ID), entities.ErrBookmarkNotFound)
}

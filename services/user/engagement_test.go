package user

import (
	"context"
	"testing"

	"glowbook/services/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleBookmark(t *testing.T) {
	store := NewEngagementStore(kvstore.NewMemoryStore())
	ctx := context.Background()

	added, err := store.ToggleBookmark(ctx, "u1", "st1")
	require.NoError(t, err)
	assert.True(t, added)

	ids, err := store.Bookmarks(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"st1"}, ids)

	// Toggling again removes it.
	added, err = store.ToggleBookmark(ctx, "u1", "st1")
	require.NoError(t, err)
	assert.False(t, added)

	ids, err = store.Bookmarks(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBookmarksKeepOrder(t *testing.T) {
	store := NewEngagementStore(kvstore.NewMemoryStore())
	ctx := context.Background()

	for _, id := range []string{"st1", "st2", "st3"} {
		_, err := store.ToggleBookmark(ctx, "u1", id)
		require.NoError(t, err)
	}
	_, err := store.ToggleBookmark(ctx, "u1", "st2")
	require.NoError(t, err)

	ids, err := store.Bookmarks(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"st1", "st3"}, ids)
}

func TestLikedReviewsIndependentFromBookmarks(t *testing.T) {
	store := NewEngagementStore(kvstore.NewMemoryStore())
	ctx := context.Background()

	_, err := store.ToggleBookmark(ctx, "u1", "same-id")
	require.NoError(t, err)
	_, err = store.ToggleLikedReview(ctx, "u1", "r1")
	require.NoError(t, err)

	likes, err := store.LikedReviews(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, likes)

	bookmarks, err := store.Bookmarks(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"same-id"}, bookmarks)
}

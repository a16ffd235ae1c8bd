package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"glowbook/services/kvstore"
)

const (
	bookmarkKeyPrefix = "bookmarks:"
	likedKeyPrefix    = "liked_reviews:"
)

// EngagementStore keeps per-user bookmarked staff and liked reviews as
// JSON-serialized id sets, one key per user per kind.
type EngagementStore struct {
	Store kvstore.Store
}

// NewEngagementStore constructs the store.
func NewEngagementStore(store kvstore.Store) *EngagementStore {
	return &EngagementStore{Store: store}
}

func (e *EngagementStore) load(ctx context.Context, key string) ([]string, error) {
	raw, err := e.Store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return ids, nil
}

func (e *EngagementStore) save(ctx context.Context, key string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return e.Store.Set(ctx, key, string(data), 0)
}

// toggle adds id when absent, removes it when present, and reports the new
// membership.
func (e *EngagementStore) toggle(ctx context.Context, key, id string) (bool, error) {
	ids, err := e.load(ctx, key)
	if err != nil {
		return false, err
	}
	for i, existing := range ids {
		if existing == id {
			ids = append(ids[:i], ids[i+1:]...)
			return false, e.save(ctx, key, ids)
		}
	}
	ids = append(ids, id)
	return true, e.save(ctx, key, ids)
}

// ToggleBookmark flips whether the staff member is bookmarked.
func (e *EngagementStore) ToggleBookmark(ctx context.Context, userID, staffID string) (bool, error) {
	return e.toggle(ctx, bookmarkKeyPrefix+userID, staffID)
}

// Bookmarks lists bookmarked staff ids.
func (e *EngagementStore) Bookmarks(ctx context.Context, userID string) ([]string, error) {
	return e.load(ctx, bookmarkKeyPrefix+userID)
}

// ToggleLikedReview flips whether the review is liked.
func (e *EngagementStore) ToggleLikedReview(ctx context.Context, userID, reviewID string) (bool, error) {
	return e.toggle(ctx, likedKeyPrefix+userID, reviewID)
}

// LikedReviews lists liked review ids.
func (e *EngagementStore) LikedReviews(ctx context.Context, userID string) ([]string, error) {
	return e.load(ctx, likedKeyPrefix+userID)
}

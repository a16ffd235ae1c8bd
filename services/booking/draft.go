package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"glowbook/models"
	"glowbook/services/kvstore"
)

const draftKeyPrefix = "draft:"

// DraftTTL bounds how long an in-progress draft survives between the
// "continue" steps of the flow.
const DraftTTL = 24 * time.Hour

// ErrDraftNotFound is returned when no draft exists for the user and staff.
var ErrDraftNotFound = errors.New("booking draft not found")

// DraftStore persists booking drafts per (user, staff) pair.
type DraftStore struct {
	Store kvstore.Store
}

// NewDraftStore constructs the store.
func NewDraftStore(store kvstore.Store) *DraftStore {
	return &DraftStore{Store: store}
}

func draftKey(userID, staffID string) string {
	return draftKeyPrefix + userID + ":" + staffID
}

// Save replaces the draft for its (user, staff) pair.
func (d *DraftStore) Save(ctx context.Context, draft models.BookingDraft) error {
	draft.UpdatedAt = time.Now()
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	key := draftKey(draft.UserID, draft.StaffID)
	if err := d.Store.Set(ctx, key, string(data), DraftTTL); err != nil {
		return fmt.Errorf("failed to persist draft %s: %w", key, err)
	}
	return nil
}

// Get loads the draft for the pair, or ErrDraftNotFound.
func (d *DraftStore) Get(ctx context.Context, userID, staffID string) (*models.BookingDraft, error) {
	raw, err := d.Store.Get(ctx, draftKey(userID, staffID))
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	return &draft, nil
}

// Clear removes the draft; clearing a missing draft is a no-op.
func (d *DraftStore) Clear(ctx context.Context, userID, staffID string) error {
	return d.Store.Del(ctx, draftKey(userID, staffID))
}

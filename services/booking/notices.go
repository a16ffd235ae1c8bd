package booking

import (
	"context"
	"errors"
	"fmt"

	"glowbook/models"
	"glowbook/services/kvstore"
)

// RescheduleNotice is a one-time alert that a pending reschedule request was
// decided. It is produced at most once per decision, however often the
// booking list is refetched.
type RescheduleNotice struct {
	BookingCode string                  `json:"booking_code"`
	Status      models.RescheduleStatus `json:"status"` // approved or rejected
	Message     string                  `json:"message"`
}

// DiffReschedule detects the pending->approved and pending->rejected edges
// between two observations of the same booking. Pure; the caller owns
// remembering what was previously seen.
func DiffReschedule(code string, old, current models.RescheduleStatus) (RescheduleNotice, bool) {
	if old != models.ReschedulePending {
		return RescheduleNotice{}, false
	}
	switch current {
	case models.RescheduleApproved:
		return RescheduleNotice{
			BookingCode: code,
			Status:      current,
			Message:     "Your reschedule request was approved",
		}, true
	case models.RescheduleRejected:
		return RescheduleNotice{
			BookingCode: code,
			Status:      current,
			Message:     "Your reschedule request was declined. You can keep the booking or cancel it for a refund.",
		}, true
	default:
		return RescheduleNotice{}, false
	}
}

const noticeKeyPrefix = "resched_seen:"

// NoticeTracker remembers the last reschedule status surfaced to each user so
// edges are reported exactly once across refetches.
type NoticeTracker struct {
	Store kvstore.Store
}

// NewNoticeTracker constructs the tracker.
func NewNoticeTracker(store kvstore.Store) *NoticeTracker {
	return &NoticeTracker{Store: store}
}

func noticeKey(userID, code string) string {
	return noticeKeyPrefix + userID + ":" + code
}

// Observe compares the booking's current reschedule status against the last
// seen one, records the current value, and returns a notice when an edge was
// crossed.
func (t *NoticeTracker) Observe(ctx context.Context, userID string, b models.Booking) (RescheduleNotice, bool, error) {
	key := noticeKey(userID, b.BookingCode)

	lastRaw, err := t.Store.Get(ctx, key)
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return RescheduleNotice{}, false, fmt.Errorf("failed to read notice state: %w", err)
	}
	last := models.RescheduleStatus(lastRaw)

	if err := t.Store.Set(ctx, key, string(b.RescheduleStatus), 0); err != nil {
		return RescheduleNotice{}, false, fmt.Errorf("failed to record notice state: %w", err)
	}

	notice, ok := DiffReschedule(b.BookingCode, last, b.RescheduleStatus)
	return notice, ok, nil
}

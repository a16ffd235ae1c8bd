package cart

import (
	"context"

	"glowbook/models"
)

// CartService is the durable, per-user cart store. Every mutation persists the
// full updated collection immediately; last writer wins. Concurrent edits from
// multiple devices are not reconciled.
type CartService interface {
	// Add inserts the item, or increments quantity when the same line already
	// exists for that staff member.
	Add(ctx context.Context, userID string, item models.CartLineItem) error
	// Remove filters out exactly the matching item for that staff member.
	// Removing a non-existent item is a no-op, not an error.
	Remove(ctx context.Context, userID, itemID, staffID string) error
	// SetQuantity applies delta to the item's quantity, clamped to a minimum
	// of 1. Unknown items are ignored.
	SetQuantity(ctx context.Context, userID, itemID, staffID string, delta int) error
	// Items returns the full cart collection for the user.
	Items(ctx context.Context, userID string) ([]models.CartLineItem, error)
	// GroupByStaff returns the cart grouped per staff member, the shape the
	// per-staff checkout works from.
	GroupByStaff(ctx context.Context, userID string) (map[string]models.CartGroup, error)
	// RemoveBooked drops every line matching a booked item for that staff
	// member, used by post-booking reconciliation.
	RemoveBooked(ctx context.Context, userID, staffID string, booked []models.CartLineItem) error
}

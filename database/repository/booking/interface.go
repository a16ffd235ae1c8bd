package bookingRepo

import (
	"context"
	"errors"

	"glowbook/models"
)

// ErrNotFound is returned when no booking exists for a code.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines persistence for booking records.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByCode retrieves a booking by its client-facing code.
	GetByCode(ctx context.Context, code string) (*models.Booking, error)
	// ListByUser retrieves all bookings belonging to a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListByStaff retrieves all bookings belonging to a staff member.
	ListByStaff(ctx context.Context, staffID string) ([]models.Booking, error)
	// Update replaces an existing booking record, matched by code.
	Update(ctx context.Context, booking *models.Booking) error
}

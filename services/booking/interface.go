package booking

import (
	"context"
	"time"

	bookingRepo "glowbook/database/repository/booking"
	couponRepo "glowbook/database/repository/coupon"
	"glowbook/models"
	"glowbook/services/cart"
	"glowbook/services/payment"

	"go.uber.org/zap"
)

// ReminderScheduler schedules and cancels booking reminders.
type ReminderScheduler interface {
	Schedule(booking models.Booking) error
	Cancel(bookingCode string) error
}

// BookingService drives the booking lifecycle: creation after payment
// verification, reconciliation, cancellation and the reschedule flow.
type BookingService interface {
	// Create verifies the payment confirmation, persists the booking, then
	// reconciles the cart and draft. Reconciliation failures never undo a
	// created booking.
	Create(ctx context.Context, draft models.BookingDraft, conf models.PaymentConfirmation) (*models.Booking, error)
	// ListForUser returns the user's bookings plus one-time reschedule
	// notices detected against the previously seen state.
	ListForUser(ctx context.Context, userID string) ([]models.Booking, []RescheduleNotice, error)
	GetByCode(ctx context.Context, code string) (*models.Booking, error)
	// Cancel moves an upcoming booking to cancelled. The reason is recorded
	// and may be empty, but must have been collected.
	Cancel(ctx context.Context, code, reason string) (*models.Booking, error)
	// RequestReschedule files a reschedule request; blocked under 24 hours
	// before the appointment.
	RequestReschedule(ctx context.Context, code, newDate, newTime, reason string) (*models.Booking, error)
	// CancelReschedule withdraws a pending request; the booking is unchanged.
	CancelReschedule(ctx context.Context, code string) (*models.Booking, error)
	// ApproveReschedule applies the requested date and time (staff decision).
	ApproveReschedule(ctx context.Context, code string) (*models.Booking, error)
	// RejectReschedule declines the request, leaving the schedule unchanged.
	RejectReschedule(ctx context.Context, code string) (*models.Booking, error)
	// Complete marks an elapsed booking done (staff/worker decision).
	Complete(ctx context.Context, code string) (*models.Booking, error)
	// ToggleReminder flips the reminder flag optimistically and rolls it back
	// when scheduling fails.
	ToggleReminder(ctx context.Context, code string, enabled bool) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Cart     cart.CartService
	Coupons  couponRepo.CouponRepository
	Drafts   *DraftStore
	Gateway  payment.Gateway
	Notices  *NoticeTracker
	Reminder ReminderScheduler
	Logger   *zap.Logger
	Now      func() time.Time
	Location *time.Location
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"glowbook/models"
	"glowbook/services/payment"
	"glowbook/services/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// newBookingCode produces the opaque client-facing identifier.
func newBookingCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "GB-" + strings.ToUpper(raw[:10])
}

func validateDraft(draft models.BookingDraft) error {
	if draft.UserID == "" {
		return NewValidationError("missing user")
	}
	if draft.StaffID == "" {
		return NewValidationError("missing staff member")
	}
	if len(draft.Services) == 0 && len(draft.Packages) == 0 {
		return NewValidationError("no services or packages selected")
	}
	if _, err := time.Parse("2006-01-02", draft.Date); err != nil {
		return NewValidationError("missing or invalid booking date")
	}
	if _, err := time.Parse("15:04:05", draft.Time); err != nil {
		return NewValidationError("missing or invalid booking time")
	}
	if draft.ServiceLocation == "" {
		return NewValidationError("missing service location")
	}
	return nil
}

// Create runs the confirmation sequence: verify payment, persist the booking,
// then reconcile. The order is load-bearing: reconciliation must never run
// before the booking record exists, or a payment failure would silently lose
// cart contents.
func (s *DefaultBookingService) Create(ctx context.Context, draft models.BookingDraft, conf models.PaymentConfirmation) (*models.Booking, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	quote := pricing.Compute(draft.Lines(), draft.CouponDiscount)

	// The confirmation must present the order issued for this exact draft;
	// a valid signature over some other order proves nothing about this one.
	if draft.PaymentOrderID == "" {
		return nil, NewLifecycleError("paymentVerificationFailed", "no payment order exists for this booking")
	}
	if conf.OrderID != draft.PaymentOrderID {
		return nil, NewLifecycleError("paymentVerificationFailed", "payment does not match the order issued for this booking")
	}
	if quote.FinalAmount != draft.PaymentAmount {
		return nil, NewLifecycleError("paymentVerificationFailed", "booking total changed after the payment order was created")
	}

	if err := s.Gateway.VerifySignature(conf); err != nil {
		if errors.Is(err, payment.ErrVerificationFailed) {
			return nil, NewLifecycleError("paymentVerificationFailed", "payment could not be verified")
		}
		return nil, err
	}

	booking := models.Booking{
		ID:              uuid.New().String(),
		BookingCode:     newBookingCode(),
		StaffID:         draft.StaffID,
		UserID:          draft.UserID,
		Date:            draft.Date,
		Time:            draft.Time,
		BookedServices:  draft.Services,
		BookedPackages:  draft.Packages,
		PaymentID:       conf.PaymentID,
		TotalPrice:      quote.FinalAmount,
		Status:          models.StatusUpcoming,
		ServiceLocation: draft.ServiceLocation,
		Notes:           draft.Notes,
		CouponCode:      draft.CouponCode,
		ReminderEnabled: true,
		CreatedAt:       s.now(),
	}

	if err := s.Repo.Create(ctx, &booking); err != nil {
		return nil, err
	}

	if draft.CouponCode != "" {
		if err := s.Coupons.MarkRedeemed(ctx, draft.UserID, draft.CouponCode); err != nil {
			s.Logger.Error("failed to record coupon redemption",
				zap.String("bookingCode", booking.BookingCode),
				zap.String("coupon", draft.CouponCode),
				zap.Error(err))
		}
	}

	s.reconcile(ctx, draft, booking)
	return &booking, nil
}

// reconcile removes the booked lines from the cart, clears the draft and
// schedules the reminder. Failures here are logged only: the booking is
// authoritative and is never rolled back over cleanup.
func (s *DefaultBookingService) reconcile(ctx context.Context, draft models.BookingDraft, booking models.Booking) {
	if err := s.Cart.RemoveBooked(ctx, draft.UserID, draft.StaffID, draft.Lines()); err != nil {
		s.Logger.Error("reconciliation: failed to remove booked items from cart",
			zap.String("bookingCode", booking.BookingCode),
			zap.Error(err))
	}
	if err := s.Drafts.Clear(ctx, draft.UserID, draft.StaffID); err != nil {
		s.Logger.Error("reconciliation: failed to clear booking draft",
			zap.String("bookingCode", booking.BookingCode),
			zap.Error(err))
	}
	if s.Reminder != nil {
		if err := s.Reminder.Schedule(booking); err != nil {
			s.Logger.Error("failed to schedule booking reminder",
				zap.String("bookingCode", booking.BookingCode),
				zap.Error(err))
		}
	}
}

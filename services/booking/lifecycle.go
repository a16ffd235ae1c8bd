package booking

import (
	"context"
	"time"

	"glowbook/models"
	"glowbook/utils"

	"go.uber.org/zap"
)

// ListForUser fetches the user's bookings under the soft refresh timeout and
// runs every record through the notice tracker. A timeout is logged and
// returns empty results instead of an error.
func (s *DefaultBookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, []RescheduleNotice, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.BookingListTimeout)
	defer cancel()

	bookings, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		if ctx.Err() != nil {
			s.Logger.Warn("booking list refresh timed out", zap.String("userID", userID))
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var notices []RescheduleNotice
	for _, b := range bookings {
		notice, ok, err := s.Notices.Observe(ctx, userID, b)
		if err != nil {
			s.Logger.Error("failed to track reschedule notice",
				zap.String("bookingCode", b.BookingCode), zap.Error(err))
			continue
		}
		if ok {
			notices = append(notices, notice)
		}
	}
	return bookings, notices, nil
}

func (s *DefaultBookingService) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	return s.Repo.GetByCode(ctx, code)
}

// transition loads the booking, applies the lifecycle event, lets mutate
// adjust the record, and persists it.
func (s *DefaultBookingService) transition(ctx context.Context, code string, ev Event, mutate func(*models.Booking)) (*models.Booking, error) {
	b, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	next, err := Transition(StateOf(*b), ev)
	if err != nil {
		return nil, err
	}
	b.Status = next.Status
	b.RescheduleStatus = next.Reschedule
	if mutate != nil {
		mutate(b)
	}

	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Cancel moves an upcoming booking to cancelled and drops its reminder. The
// refund shown beforehand is an estimate only; the processed amount is
// decided here on the staff side.
func (s *DefaultBookingService) Cancel(ctx context.Context, code, reason string) (*models.Booking, error) {
	b, err := s.transition(ctx, code, EventCancel, func(b *models.Booking) {
		b.CancelReason = reason
		b.RescheduleDate = ""
		b.RescheduleTime = ""
		b.RescheduleReason = ""
	})
	if err != nil {
		return nil, err
	}

	if s.Reminder != nil {
		if err := s.Reminder.Cancel(b.BookingCode); err != nil {
			s.Logger.Error("failed to cancel booking reminder",
				zap.String("bookingCode", b.BookingCode), zap.Error(err))
		}
	}
	return b, nil
}

// RequestReschedule files a reschedule request. Requests inside the 24-hour
// window are rejected before any state changes.
func (s *DefaultBookingService) RequestReschedule(ctx context.Context, code, newDate, newTime, reason string) (*models.Booking, error) {
	if _, err := time.Parse("2006-01-02", newDate); err != nil {
		return nil, NewValidationError("missing or invalid new date")
	}
	if _, err := time.Parse("15:04:05", newTime); err != nil {
		return nil, NewValidationError("missing or invalid new time")
	}

	b, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	scheduledAt, err := b.ScheduledAt(s.location())
	if err != nil {
		return nil, err
	}
	if !CanRescheduleAt(scheduledAt, s.now()) {
		return nil, ErrTooLateToReschedule
	}

	return s.transition(ctx, code, EventRequestReschedule, func(b *models.Booking) {
		b.RescheduleDate = newDate
		b.RescheduleTime = newTime
		b.RescheduleReason = reason
	})
}

// CancelReschedule withdraws a pending request; the booking keeps its
// original date and time.
func (s *DefaultBookingService) CancelReschedule(ctx context.Context, code string) (*models.Booking, error) {
	return s.transition(ctx, code, EventCancelReschedule, func(b *models.Booking) {
		b.RescheduleDate = ""
		b.RescheduleTime = ""
		b.RescheduleReason = ""
	})
}

// ApproveReschedule applies the requested date and time and reschedules the
// reminder accordingly.
func (s *DefaultBookingService) ApproveReschedule(ctx context.Context, code string) (*models.Booking, error) {
	b, err := s.transition(ctx, code, EventApproveReschedule, func(b *models.Booking) {
		b.Date = b.RescheduleDate
		b.Time = b.RescheduleTime
		b.RescheduleDate = ""
		b.RescheduleTime = ""
	})
	if err != nil {
		return nil, err
	}

	if s.Reminder != nil && b.ReminderEnabled {
		if err := s.Reminder.Cancel(b.BookingCode); err != nil {
			s.Logger.Error("failed to drop stale reminder",
				zap.String("bookingCode", b.BookingCode), zap.Error(err))
		}
		if err := s.Reminder.Schedule(*b); err != nil {
			s.Logger.Error("failed to reschedule reminder",
				zap.String("bookingCode", b.BookingCode), zap.Error(err))
		}
	}
	return b, nil
}

// RejectReschedule declines the request; the original schedule stands.
func (s *DefaultBookingService) RejectReschedule(ctx context.Context, code string) (*models.Booking, error) {
	return s.transition(ctx, code, EventRejectReschedule, nil)
}

// Complete marks an elapsed upcoming booking done.
func (s *DefaultBookingService) Complete(ctx context.Context, code string) (*models.Booking, error) {
	return s.transition(ctx, code, EventComplete, func(b *models.Booking) {
		b.RescheduleStatus = models.RescheduleNone
		b.RescheduleDate = ""
		b.RescheduleTime = ""
	})
}

// ToggleReminder flips the reminder flag through an optimistic mutation: the
// record is updated first, the scheduler call follows, and a scheduler
// failure rolls the flag back.
func (s *DefaultBookingService) ToggleReminder(ctx context.Context, code string, enabled bool) (*models.Booking, error) {
	b, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusUpcoming {
		return nil, NewLifecycleError("invalidTransition", "reminders only apply to upcoming bookings")
	}
	previous := b.ReminderEnabled

	m := OptimisticMutation{
		Apply: func() error {
			b.ReminderEnabled = enabled
			return s.Repo.Update(ctx, b)
		},
		Effect: func() error {
			if s.Reminder == nil {
				return nil
			}
			if enabled {
				return s.Reminder.Schedule(*b)
			}
			return s.Reminder.Cancel(b.BookingCode)
		},
		Revert: func() error {
			b.ReminderEnabled = previous
			return s.Repo.Update(ctx, b)
		},
	}
	if err := m.Run(); err != nil {
		return nil, err
	}
	return b, nil
}

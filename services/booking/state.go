package booking

import (
	"time"

	"glowbook/models"
)

// State is the full lifecycle state of a booking: the primary status plus the
// orthogonal reschedule sub-state, which is only meaningful while upcoming.
type State struct {
	Status     models.BookingStatus
	Reschedule models.RescheduleStatus
}

// Event is a lifecycle transition trigger.
type Event string

const (
	EventCancel            Event = "cancel"
	EventComplete          Event = "complete"
	EventRequestReschedule Event = "request_reschedule"
	EventApproveReschedule Event = "approve_reschedule"
	EventRejectReschedule  Event = "reject_reschedule"
	EventCancelReschedule  Event = "cancel_reschedule"
)

// StateOf extracts the lifecycle state from a booking record.
func StateOf(b models.Booking) State {
	return State{Status: b.Status, Reschedule: b.RescheduleStatus}
}

// Transition is the single source of truth for lifecycle moves. It returns
// the next state, or a LifecycleError when the event is not allowed from the
// current state. A cancelled booking never transitions further.
func Transition(s State, ev Event) (State, error) {
	if s.Status == models.StatusCancelled {
		return s, NewLifecycleError("invalidTransition", "booking is cancelled and cannot change further")
	}
	if s.Status == models.StatusCompleted {
		return s, NewLifecycleError("invalidTransition", "booking is already completed")
	}

	// From here s.Status == upcoming.
	switch ev {
	case EventCancel:
		return State{Status: models.StatusCancelled}, nil
	case EventComplete:
		return State{Status: models.StatusCompleted}, nil
	case EventRequestReschedule:
		if s.Reschedule == models.ReschedulePending {
			return s, NewLifecycleError("reschedulePending", "a reschedule request is already pending")
		}
		return State{Status: models.StatusUpcoming, Reschedule: models.ReschedulePending}, nil
	case EventApproveReschedule:
		if s.Reschedule != models.ReschedulePending {
			return s, NewLifecycleError("invalidTransition", "no pending reschedule request to approve")
		}
		return State{Status: models.StatusUpcoming, Reschedule: models.RescheduleApproved}, nil
	case EventRejectReschedule:
		if s.Reschedule != models.ReschedulePending {
			return s, NewLifecycleError("invalidTransition", "no pending reschedule request to reject")
		}
		return State{Status: models.StatusUpcoming, Reschedule: models.RescheduleRejected}, nil
	case EventCancelReschedule:
		if s.Reschedule != models.ReschedulePending {
			return s, NewLifecycleError("invalidTransition", "no pending reschedule request to cancel")
		}
		return State{Status: models.StatusUpcoming, Reschedule: models.RescheduleNone}, nil
	default:
		return s, NewLifecycleError("invalidTransition", "unknown lifecycle event")
	}
}

// RescheduleWindow is the minimum lead time before the appointment during
// which rescheduling is no longer offered; the user keeps or cancels.
const RescheduleWindow = 24 * time.Hour

// FullRefundWindow is the lead time at or beyond which the displayed refund
// estimate is 100%.
const FullRefundWindow = 24 * time.Hour

// CanRescheduleAt reports whether a reschedule request is still allowed for
// an appointment at scheduledAt, evaluated at now.
func CanRescheduleAt(scheduledAt, now time.Time) bool {
	return scheduledAt.Sub(now) >= RescheduleWindow
}

// RefundEstimate returns the refund messaging shown before cancellation. The
// estimate is display-only; the actual refund amount is decided when the
// cancellation is processed.
func RefundEstimate(scheduledAt, now time.Time) string {
	if scheduledAt.Sub(now) >= FullRefundWindow {
		return "100%"
	}
	return "80%"
}

// Actions enumerates what a user may do with a booking in its current state
// at the given instant. Handlers and tests both read from this lookup so the
// UI never derives its own rules.
type Actions struct {
	CanCancel           bool   `json:"can_cancel"`
	CanReschedule       bool   `json:"can_reschedule"`
	CanCancelReschedule bool   `json:"can_cancel_reschedule"`
	RefundEstimate      string `json:"refund_estimate,omitempty"`
}

// AllowedActions computes the action set for a booking. The reschedule action
// additionally honors the 24-hour window.
func AllowedActions(b models.Booking, scheduledAt, now time.Time) Actions {
	s := StateOf(b)
	if s.Status != models.StatusUpcoming {
		return Actions{}
	}

	a := Actions{
		CanCancel:           true,
		RefundEstimate:      RefundEstimate(scheduledAt, now),
		CanCancelReschedule: s.Reschedule == models.ReschedulePending,
	}
	if s.Reschedule != models.ReschedulePending && CanRescheduleAt(scheduledAt, now) {
		// A rejected request leaves only keeping or cancelling the booking.
		a.CanReschedule = s.Reschedule != models.RescheduleRejected
	}
	return a
}

package booking

import "fmt"

// LifecycleError is a business-rule rejection; its Message is safe to surface
// to the user as-is.
type LifecycleError struct {
	Code    string
	Message string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewLifecycleError(code, msg string) error {
	return &LifecycleError{Code: code, Message: msg}
}

// NewValidationError flags missing or malformed input caught before any side
// effect.
func NewValidationError(msg string) error {
	return &LifecycleError{Code: "validation", Message: msg}
}

// ErrTooLateToReschedule is returned when the appointment is under 24 hours
// away; the user may keep the booking or cancel it, never reschedule.
var ErrTooLateToReschedule = &LifecycleError{
	Code:    "rescheduleWindowClosed",
	Message: "appointments under 24 hours away can only be kept or cancelled",
}

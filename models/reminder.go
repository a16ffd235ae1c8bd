package models

// ReminderPayload is the asynq task payload for a scheduled booking reminder.
type ReminderPayload struct {
	BookingCode string `json:"bookingCode"`
	UserID      string `json:"userId"`
	FireDate    string `json:"fireDate"` // RFC3339
	Title       string `json:"title"`
	Body        string `json:"body"`
}

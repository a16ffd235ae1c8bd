package models

import "time"

// BookingStatus is the primary lifecycle state of a booking.
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled" // terminal
)

// RescheduleStatus is the orthogonal sub-state of an upcoming booking.
// The empty value means no reschedule request exists.
type RescheduleStatus string

const (
	RescheduleNone     RescheduleStatus = ""
	ReschedulePending  RescheduleStatus = "pending"
	RescheduleApproved RescheduleStatus = "approved"
	RescheduleRejected RescheduleStatus = "rejected"
)

// Booking represents a confirmed booking record.
type Booking struct {
	ID               string           `bson:"id" json:"id"`
	BookingCode      string           `bson:"booking_code" json:"booking_code"` // opaque client-facing identifier
	StaffID          string           `bson:"staff_id" json:"staff_id"`
	UserID           string           `bson:"user_id" json:"user_id"`
	Date             string           `bson:"date" json:"date"` // "2006-01-02"
	Time             string           `bson:"time" json:"time"` // "15:04:05"
	BookedServices   []CartLineItem   `bson:"booked_services" json:"booked_services"`
	BookedPackages   []CartLineItem   `bson:"booked_packages" json:"booked_packages"`
	PaymentID        string           `bson:"payment_id" json:"payment_id"`
	TotalPrice       float64          `bson:"total_price" json:"total_price"`
	Status           BookingStatus    `bson:"status" json:"status"`
	RescheduleStatus RescheduleStatus `bson:"reschedule_status,omitempty" json:"reschedule_status,omitempty"`
	RescheduleDate   string           `bson:"reschedule_date,omitempty" json:"reschedule_date,omitempty"`
	RescheduleTime   string           `bson:"reschedule_time,omitempty" json:"reschedule_time,omitempty"`
	RescheduleReason string           `bson:"reschedule_reason,omitempty" json:"reschedule_reason,omitempty"`
	CancelReason     string           `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`
	ServiceLocation  string           `bson:"service_location" json:"service_location"`
	Notes            string           `bson:"notes,omitempty" json:"notes,omitempty"`
	CouponCode       string           `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	ReminderEnabled  bool             `bson:"reminder_enabled" json:"reminder_enabled"`
	CreatedAt        time.Time        `bson:"created_at" json:"created_at"`
}

// ScheduledAt combines Date and Time into a wall-clock instant.
func (b Booking) ScheduledAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04:05", b.Date+" "+b.Time, loc)
}

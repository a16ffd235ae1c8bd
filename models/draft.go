package models

import "time"

// BookingDraft is the transient aggregate a user builds up between the
// "continue" steps of the booking flow. It lives in the draft cache until a
// Booking is confirmed, then it is cleared by reconciliation.
type BookingDraft struct {
	UserID          string         `json:"user_id"`
	StaffID         string         `json:"staff_id"`
	Services        []CartLineItem `json:"services"`
	Packages        []CartLineItem `json:"packages"`
	ServiceLocation string         `json:"service_location"`
	Date            string         `json:"date"` // "2006-01-02"
	Time            string         `json:"time"` // "15:04:05"
	Notes           string         `json:"notes,omitempty"`
	CouponCode      string         `json:"coupon_code,omitempty"`
	CouponDiscount  float64        `json:"coupon_discount"`
	PaymentMethod   string         `json:"payment_method,omitempty"`
	// PaymentOrderID and PaymentAmount record the gateway order issued for
	// this draft; confirmation must present the same order over the same
	// amount.
	PaymentOrderID string    `json:"payment_order_id,omitempty"`
	PaymentAmount  float64   `json:"payment_amount,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Lines returns all draft line items, services first.
func (d BookingDraft) Lines() []CartLineItem {
	out := make([]CartLineItem, 0, len(d.Services)+len(d.Packages))
	out = append(out, d.Services...)
	out = append(out, d.Packages...)
	return out
}

package models

import "time"

// Coupon is a discount code record. Validation always re-reads the stored
// record; results are never cached on the caller side.
type Coupon struct {
	Code           string    `bson:"code" json:"code"`
	DiscountAmount float64   `bson:"discount_amount" json:"discount_amount"`
	Active         bool      `bson:"active" json:"active"`
	ExpiresAt      time.Time `bson:"expires_at" json:"expires_at"`
}

// CouponResult is the outcome of verifying a coupon for a user. When the
// coupon is not valid, DiscountAmount is zero and Message carries the reason
// to surface verbatim.
type CouponResult struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discount_amount"`
	Message        string  `json:"message"`
}

// Package pricing computes the final payable amount for a booking draft.
package pricing

import (
	"math"

	"glowbook/models"
)

// FlatDiscount is the platform discount applied to every checkout, in major
// currency units.
const FlatDiscount = 50.0

// PlatformFeePercent is the surcharge applied after discounts.
const PlatformFeePercent = 0.05

// Quote is the itemized pricing breakdown.
type Quote struct {
	Subtotal       float64 `json:"subtotal"`
	CouponDiscount float64 `json:"coupon_discount"`
	FlatDiscount   float64 `json:"flat_discount"`
	AfterDiscounts float64 `json:"after_discounts"`
	PlatformFee    float64 `json:"platform_fee"`
	FinalAmount    float64 `json:"final_amount"`
}

// Subtotal sums price*quantity over the given lines.
func Subtotal(lines []models.CartLineItem) float64 {
	var sum float64
	for _, it := range lines {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// Compute produces the quote for the lines with the given coupon discount.
// Order matters: both discounts come off the subtotal first, then the
// platform fee is computed on the discounted base and rounded to the nearest
// whole currency unit before being added back. FinalAmount is not rounded
// further.
func Compute(lines []models.CartLineItem, couponDiscount float64) Quote {
	return ComputeFromSubtotal(Subtotal(lines), couponDiscount)
}

// ComputeFromSubtotal is Compute for an already-aggregated subtotal.
func ComputeFromSubtotal(subtotal, couponDiscount float64) Quote {
	afterDiscounts := subtotal - couponDiscount - FlatDiscount
	platformFee := math.Round(afterDiscounts * PlatformFeePercent)
	return Quote{
		Subtotal:       subtotal,
		CouponDiscount: couponDiscount,
		FlatDiscount:   FlatDiscount,
		AfterDiscounts: afterDiscounts,
		PlatformFee:    platformFee,
		FinalAmount:    afterDiscounts + platformFee,
	}
}

package couponRepo

import (
	"context"

	"glowbook/models"
)

// CouponRepository defines data access for coupon codes.
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	// HasRedeemed reports whether the user already redeemed the code.
	HasRedeemed(ctx context.Context, userID, code string) (bool, error)
	// MarkRedeemed records a redemption for the user+code pair.
	MarkRedeemed(ctx context.Context, userID, code string) error
}

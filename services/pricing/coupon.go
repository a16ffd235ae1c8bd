package pricing

import (
	"context"
	"errors"
	"time"

	couponRepo "glowbook/database/repository/coupon"
	"glowbook/models"
)

// CouponService validates a coupon for a user. Results are never cached; the
// code is re-verified each time it is entered.
type CouponService interface {
	Verify(ctx context.Context, userID, code string) (models.CouponResult, error)
}

// DefaultCouponService implements CouponService over the coupon repository.
type DefaultCouponService struct {
	Repo couponRepo.CouponRepository
	Now  func() time.Time
}

// NewDefaultCouponService constructs the service with wall-clock time.
func NewDefaultCouponService(repo couponRepo.CouponRepository) *DefaultCouponService {
	return &DefaultCouponService{Repo: repo, Now: time.Now}
}

// Verify returns the discount for a valid coupon, or a zero-discount result
// whose Message explains the rejection. Callers surface Message verbatim and
// must not synthesize their own.
func (s *DefaultCouponService) Verify(ctx context.Context, userID, code string) (models.CouponResult, error) {
	coupon, err := s.Repo.GetByCode(ctx, code)
	if errors.Is(err, couponRepo.ErrNotFound) {
		return models.CouponResult{Message: "Invalid coupon code"}, nil
	}
	if err != nil {
		return models.CouponResult{}, err
	}

	if !coupon.Active {
		return models.CouponResult{Message: "This coupon is no longer active"}, nil
	}
	if !coupon.ExpiresAt.IsZero() && coupon.ExpiresAt.Before(s.Now()) {
		return models.CouponResult{Message: "This coupon has expired"}, nil
	}

	redeemed, err := s.Repo.HasRedeemed(ctx, userID, code)
	if err != nil {
		return models.CouponResult{}, err
	}
	if redeemed {
		return models.CouponResult{Message: "You have already used this coupon"}, nil
	}

	return models.CouponResult{
		Valid:          true,
		DiscountAmount: coupon.DiscountAmount,
		Message:        "Coupon applied successfully",
	}, nil
}

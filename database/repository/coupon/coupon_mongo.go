package couponRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no coupon exists for a code.
var ErrNotFound = errors.New("coupon not found")

// MongoCouponRepo implements CouponRepository using MongoDB.
type MongoCouponRepo struct {
	coupons     *mongo.Collection
	redemptions *mongo.Collection
}

// NewMongoCouponRepo creates a new instance of CouponRepository using MongoDB.
func NewMongoCouponRepo() CouponRepository {
	return &MongoCouponRepo{
		coupons:     database.Collection("coupons"),
		redemptions: database.Collection("coupon_redemptions"),
	}
}

func (r *MongoCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var coupon models.Coupon
	err := r.coupons.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coupon %s: %w", code, err)
	}
	return &coupon, nil
}

func (r *MongoCouponRepo) HasRedeemed(ctx context.Context, userID, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.redemptions.CountDocuments(ctx, bson.M{"user_id": userID, "code": code})
	if err != nil {
		return false, fmt.Errorf("failed to check redemption for %s: %w", code, err)
	}
	return count > 0, nil
}

func (r *MongoCouponRepo) MarkRedeemed(ctx context.Context, userID, code string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := bson.M{"user_id": userID, "code": code, "redeemed_at": time.Now()}
	if _, err := r.redemptions.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to record redemption for %s: %w", code, err)
	}
	return nil
}

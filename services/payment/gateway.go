// Package payment creates gateway orders and verifies checkout signatures.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"glowbook/models"

	razorpay "github.com/razorpay/razorpay-go"
	rputils "github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"
)

// ErrVerificationFailed indicates the signature triple did not check out; the
// payment must not be treated as made.
var ErrVerificationFailed = errors.New("payment verification failed")

// Gateway abstracts the payment provider so booking logic can be tested
// without network calls.
type Gateway interface {
	// CreateOrder registers an order for the amount (major currency units)
	// ahead of checkout.
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*models.PaymentOrder, error)
	// VerifySignature checks the confirmation triple returned by the checkout
	// SDK. Returns ErrVerificationFailed on mismatch.
	VerifySignature(conf models.PaymentConfirmation) error
}

// RazorpayGateway implements Gateway against Razorpay.
type RazorpayGateway struct {
	client    *razorpay.Client
	keySecret string
	logger    *zap.Logger
}

// NewRazorpayGateway constructs the gateway with API credentials.
func NewRazorpayGateway(keyID, keySecret string, logger *zap.Logger) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
		logger:    logger,
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*models.PaymentOrder, error) {
	// Razorpay wants the amount in the smallest currency unit.
	data := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	orderID, _ := body["id"].(string)
	if orderID == "" {
		return nil, errors.New("payment gateway returned no order id")
	}

	g.logger.Info("payment order created",
		zap.String("orderID", orderID),
		zap.Float64("amount", amount),
		zap.String("currency", currency))

	return &models.PaymentOrder{ID: orderID, Amount: amount, Currency: currency}, nil
}

func (g *RazorpayGateway) VerifySignature(conf models.PaymentConfirmation) error {
	params := map[string]interface{}{
		"razorpay_order_id":   conf.OrderID,
		"razorpay_payment_id": conf.PaymentID,
	}
	if !rputils.VerifyPaymentSignature(params, conf.Signature, g.keySecret) {
		g.logger.Warn("payment signature mismatch", zap.String("orderID", conf.OrderID))
		return ErrVerificationFailed
	}
	return nil
}

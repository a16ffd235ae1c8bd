package models

// PaymentOrder is a gateway order created ahead of checkout.
type PaymentOrder struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`   // major currency units
	Currency string  `json:"currency"`
}

// PaymentConfirmation is the signature triple returned by the checkout SDK
// after the user completes payment.
type PaymentConfirmation struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

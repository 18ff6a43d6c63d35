package gateway

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// PaymentGateway creates gateway orders and verifies payment callbacks.
// Amounts are in the gateway's minor units (paise for INR).
type PaymentGateway interface {
	CreateOrder(amountMinor int64, currency, receipt string) (string, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
	KeyID() string
}

// RazorpayGateway is a PaymentGateway backed by the Razorpay Orders API.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
	secret string
}

// NewRazorpayGateway creates a new RazorpayGateway with the given API keys.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
		secret: keySecret,
	}
}

// CreateOrder creates a Razorpay order for the given amount and returns the
// gateway-assigned order handle.
func (g *RazorpayGateway) CreateOrder(amountMinor int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return id, nil
}

// VerifySignature checks the HMAC signature Razorpay sends with a successful
// payment callback.
func (g *RazorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.secret)
}

// KeyID returns the public API key the payment widget needs.
func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

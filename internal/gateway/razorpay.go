package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"vendora/internal/infra"
	"vendora/pkg/utils"
)

// Order is the gateway's order handle returned to the client so it can
// open the checkout widget.
type Order struct {
	ID       string
	Amount   int64 // minor units
	Currency string
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]interface{}) (*Order, error)
	// VerifySignature checks the confirmation triple the gateway signs
	// with the shared secret. The secret never leaves the server.
	VerifySignature(orderID, paymentID, signature string) bool
}

type razorpayGateway struct {
	client *razorpay.Client
	secret string
}

func NewRazorpayGateway(cfg *infra.Config) PaymentGateway {
	client := razorpay.NewClient(cfg.Gateway.KeyID, cfg.Gateway.KeySecret)
	client.SetTimeout(timeoutSeconds(cfg.Gateway.Timeout))
	return &razorpayGateway{
		client: client,
		secret: cfg.Gateway.KeySecret,
	}
}

// timeoutSeconds clamps the configured timeout into the int16 seconds
// the SDK's SetTimeout accepts.
func timeoutSeconds(d time.Duration) int16 {
	secs := int64(d / time.Second)
	if secs < 1 {
		return 1
	}
	if secs > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(secs)
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]interface{}) (*Order, error) {
	if len(receipt) > 40 {
		receipt = receipt[:40]
	}

	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	resp, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create order: %v", utils.ErrGatewayUnavailable, err)
	}

	id, _ := resp["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: order response missing id", utils.ErrGatewayUnavailable)
	}

	order := &Order{ID: id, Amount: amountMinor, Currency: currency}
	if amt, ok := resp["amount"].(float64); ok {
		order.Amount = int64(amt)
	}
	if cur, ok := resp["currency"].(string); ok && cur != "" {
		order.Currency = cur
	}
	return order, nil
}

func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(g.secret, orderID, paymentID, signature)
}

// VerifySignature recomputes HMAC-SHA256(secret, order_id|payment_id)
// and compares in constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

package response_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InitiatePaymentResponse struct {
	OrderID        string          `json:"order_id"`
	AmountMinor    int64           `json:"amount_minor"`
	Currency       string          `json:"currency"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	OfferType      string          `json:"offer_type,omitempty"`
	OfferCode      string          `json:"offer_code,omitempty"`
}

type VerifyPaymentResponse struct {
	PaymentID        uuid.UUID       `json:"payment_id"`
	SubscriptionID   uuid.UUID       `json:"subscription_id"`
	GatewayPaymentID string          `json:"gateway_payment_id"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	OfferType        string          `json:"offer_type,omitempty"`
	StartsAt         int64           `json:"starts_at"`
	EndsAt           int64           `json:"ends_at"`
	AlreadySettled   bool            `json:"already_settled,omitempty"`
}

type SubscriptionStatusResponse struct {
	VendorID uuid.UUID `json:"vendor_id"`
	PlanID   uuid.UUID `json:"plan_id"`
	PlanCode string    `json:"plan_code,omitempty"`
	Status   string    `json:"status"`
	StartsAt int64     `json:"starts_at"`
	EndsAt   int64     `json:"ends_at"`
}

type ReferralOfferResponse struct {
	PlanID         uuid.UUID       `json:"plan_id"`
	PlanCode       string          `json:"plan_code"`
	OfferCode      string          `json:"offer_code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
}

package request_models

import "github.com/google/uuid"

type InitiatePaymentRequest struct {
	VendorID   uuid.UUID `json:"vendor_id" binding:"required"`
	PlanID     uuid.UUID `json:"plan_id" binding:"required"`
	CouponCode string    `json:"coupon_code"`
}

type VerifyPaymentRequest struct {
	OrderID    string    `json:"order_id" binding:"required"`
	PaymentID  string    `json:"payment_id" binding:"required"`
	Signature  string    `json:"signature" binding:"required"`
	VendorID   uuid.UUID `json:"vendor_id" binding:"required"`
	PlanID     uuid.UUID `json:"plan_id" binding:"required"`
	CouponCode string    `json:"coupon_code"`
}

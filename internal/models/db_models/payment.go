package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentCaptured PaymentStatus = "captured"
)

type OfferType string

const (
	OfferCoupon   OfferType = "coupon"
	OfferReferral OfferType = "referral"
)

// Payment is written exactly once per verified gateway confirmation.
// The unique index on GatewayPaymentID is the duplicate-settlement
// guard: a second verify for the same payment hits 23505 and returns
// the prior result.
type Payment struct {
	BaseModel
	VendorID       uuid.UUID `gorm:"index"`
	PlanID         uuid.UUID `gorm:"index"`
	SubscriptionID uuid.UUID `gorm:"index"`

	GatewayOrderID   string `gorm:"index"`
	GatewayPaymentID string `gorm:"uniqueIndex"`

	Amount         decimal.Decimal `gorm:"type:numeric(12,2)"` // plan price
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2)"`
	NetAmount      decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency       string          `gorm:"size:3"`

	OfferType      *OfferType `gorm:"type:varchar(16)"`
	OfferCode      *string
	ReferralRuleID *uuid.UUID `gorm:"index"`

	Status   PaymentStatus  `gorm:"type:varchar(16)"`
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

func (Payment) TableName() string { return "vendor_payments" }

type SubscriptionStatus string

const (
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusReplaced SubscriptionStatus = "replaced"
	SubStatusExpired  SubscriptionStatus = "expired"
)

type Subscription struct {
	BaseModel
	VendorID uuid.UUID `gorm:"index"`
	PlanID   uuid.UUID `gorm:"index"`

	Status   SubscriptionStatus `gorm:"type:varchar(16);index"`
	StartsAt int64              `gorm:"not null"`
	EndsAt   int64              `gorm:"not null"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

func (Subscription) TableName() string { return "vendor_plan_subscriptions" }

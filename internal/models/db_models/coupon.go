package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFlat    DiscountType = "flat"
)

type Coupon struct {
	BaseModel
	Code         string          `gorm:"uniqueIndex"` // stored uppercase
	DiscountType DiscountType    `gorm:"type:varchar(16)"`
	Value        decimal.Decimal `gorm:"type:numeric(12,2)"`

	// Raw scope columns; read through ParseScope.
	VendorScope string `gorm:"default:''"`
	PlanScope   string `gorm:"default:''"`

	MaxUses   int32 `gorm:"default:0"` // 0 = unlimited
	UsedCount int32 `gorm:"default:0"`
	ExpiresAt *int64
	IsActive  bool `gorm:"default:true"`
}

func (Coupon) TableName() string { return "vendor_plan_coupons" }

func (c *Coupon) Expired(nowUnix int64) bool {
	return c.ExpiresAt != nil && *c.ExpiresAt <= nowUnix
}

func (c *Coupon) Exhausted() bool {
	return c.MaxUses > 0 && c.UsedCount >= c.MaxUses
}

type CouponUsage struct {
	BaseModel
	CouponID    uuid.UUID       `gorm:"index"`
	VendorID    uuid.UUID       `gorm:"index"`
	PaymentID   uuid.UUID       `gorm:"index"`
	AmountSaved decimal.Decimal `gorm:"type:numeric(12,2)"`
}

func (CouponUsage) TableName() string { return "vendor_coupon_usages" }

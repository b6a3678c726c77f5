package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Referral links a referred vendor to the vendor who brought them in.
// The referred vendor redeems OfferCode at checkout; the referrer earns
// the wallet reward. One link per referred vendor.
type Referral struct {
	BaseModel
	ReferrerVendorID uuid.UUID `gorm:"index"`
	ReferredVendorID uuid.UUID `gorm:"uniqueIndex"`
	OfferCode        string    `gorm:"index"`
	IsActive         bool      `gorm:"default:true"`
}

func (Referral) TableName() string { return "vendor_referrals" }

// ReferralRule holds the per-plan discount and reward parameters. A
// resolved offer is the join of a vendor's Referral with the rule for
// the plan being bought.
type ReferralRule struct {
	BaseModel
	PlanID uuid.UUID `gorm:"index"`

	DiscountType  DiscountType     `gorm:"type:varchar(16)"`
	DiscountValue decimal.Decimal  `gorm:"type:numeric(12,2)"`
	DiscountCap   *decimal.Decimal `gorm:"type:numeric(12,2)"`

	RewardPercent decimal.Decimal  `gorm:"type:numeric(5,2)"`
	RewardCap     *decimal.Decimal `gorm:"type:numeric(12,2)"`

	StartsAt *int64
	EndsAt   *int64
	IsActive bool `gorm:"default:true"`
}

func (ReferralRule) TableName() string { return "vendor_referral_rules" }

func (r *ReferralRule) ActiveAt(nowUnix int64) bool {
	if !r.IsActive {
		return false
	}
	if r.StartsAt != nil && *r.StartsAt > nowUnix {
		return false
	}
	if r.EndsAt != nil && *r.EndsAt <= nowUnix {
		return false
	}
	return true
}

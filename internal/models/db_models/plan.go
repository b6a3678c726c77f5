package db_models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Plan struct {
	BaseModel
	Code         string `gorm:"uniqueIndex"` // e.g., "starter", "growth_yearly"
	Name         string
	Description  *string
	Price        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency     string          `gorm:"size:3"`
	DurationDays int32           `gorm:"default:365"`
	IsActive     bool            `gorm:"default:true"`

	// Optional per-extra-unit overrides (extra leads, extra seats, ...).
	ExtraUnitPrice *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Features       datatypes.JSON   `gorm:"type:jsonb;default:'{}'"`
}

func (Plan) TableName() string { return "vendor_plans" }

// Duration falls back to a year when the row predates the column.
func (p *Plan) Duration() int32 {
	if p.DurationDays <= 0 {
		return 365
	}
	return p.DurationDays
}

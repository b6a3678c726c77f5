package response_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlanResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	DurationDays int32           `json:"duration_days"`
	IsActive     bool            `json:"is_active"`
}

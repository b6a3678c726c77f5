package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CashoutStatus string

const (
	CashoutRequested CashoutStatus = "requested"
	CashoutApproved  CashoutStatus = "approved"
	CashoutRejected  CashoutStatus = "rejected"
	CashoutPaid      CashoutStatus = "paid"
)

// Terminal states; no transition leaves them.
func (s CashoutStatus) Terminal() bool {
	return s == CashoutRejected || s == CashoutPaid
}

type CashoutRequest struct {
	BaseModel
	VendorID uuid.UUID       `gorm:"index"`
	Amount   decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status   CashoutStatus   `gorm:"type:varchar(16);index"`

	RejectionReason *string
	UTR             string // payout reference from the bank transfer
	ReceiptURL      string

	RequestedAt int64
	ApprovedAt  *int64
	RejectedAt  *int64
	PaidAt      *int64
}

func (CashoutRequest) TableName() string { return "vendor_referral_cashout_requests" }

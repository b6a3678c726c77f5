package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is the materialized balance projection. The ledger is the
// source of truth; these columns are updated in the same transaction
// as every ledger insert.
type Wallet struct {
	BaseModel
	VendorID uuid.UUID `gorm:"uniqueIndex"`

	AvailableBalance decimal.Decimal `gorm:"type:numeric(12,2)"`
	PendingBalance   decimal.Decimal `gorm:"type:numeric(12,2)"`
	LifetimeEarned   decimal.Decimal `gorm:"type:numeric(12,2)"`
	LifetimePaidOut  decimal.Decimal `gorm:"type:numeric(12,2)"`
}

func (Wallet) TableName() string { return "vendor_referral_wallets" }

type LedgerEntryType string

const (
	EntryEarned         LedgerEntryType = "earned"
	EntryCashoutRequest LedgerEntryType = "cashout_request"
	EntryCashoutRevert  LedgerEntryType = "cashout_revert"
	EntryCashoutPaid    LedgerEntryType = "cashout_paid"
)

type LedgerEntryStatus string

const (
	LedgerApplied LedgerEntryStatus = "applied"
)

// WalletLedgerEntry is append-only. Rows are never updated or deleted;
// corrections are new entries with the opposite sign. ReferenceKey is
// unique per logical event, so replaying an event is a duplicate-key
// no-op rather than a double count.
type WalletLedgerEntry struct {
	BaseModel
	VendorID     uuid.UUID         `gorm:"index"`
	EntryType    LedgerEntryType   `gorm:"type:varchar(32)"`
	Amount       decimal.Decimal   `gorm:"type:numeric(12,2)"` // signed delta to available_balance
	Status       LedgerEntryStatus `gorm:"type:varchar(16);default:'applied'"`
	ReferenceKey string            `gorm:"uniqueIndex"`

	CashoutRequestID *uuid.UUID `gorm:"index"`
	PaymentID        *uuid.UUID `gorm:"index"`
	Note             string
}

func (WalletLedgerEntry) TableName() string { return "vendor_referral_wallet_ledger" }

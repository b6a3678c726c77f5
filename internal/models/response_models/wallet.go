package response_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletResponse struct {
	VendorID         uuid.UUID           `json:"vendor_id"`
	AvailableBalance decimal.Decimal     `json:"available_balance"`
	PendingBalance   decimal.Decimal     `json:"pending_balance"`
	LifetimeEarned   decimal.Decimal     `json:"lifetime_earned"`
	LifetimePaidOut  decimal.Decimal     `json:"lifetime_paid_out"`
	RecentEntries    []WalletLedgerEntry `json:"recent_entries"`
}

type WalletLedgerEntry struct {
	ID           uuid.UUID       `json:"id"`
	EntryType    string          `json:"entry_type"`
	Amount       decimal.Decimal `json:"amount"`
	ReferenceKey string          `json:"reference_key"`
	CreatedAt    int64           `json:"created_at"`
}

type CashoutResponse struct {
	ID              uuid.UUID       `json:"id"`
	VendorID        uuid.UUID       `json:"vendor_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	UTR             string          `json:"utr,omitempty"`
	ReceiptURL      string          `json:"receipt_url,omitempty"`
	RequestedAt     int64           `json:"requested_at"`
}

package request_models

import "github.com/shopspring/decimal"

type CreateCashoutRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type RejectCashoutRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type MarkPaidCashoutRequest struct {
	UTR        string `json:"utr" binding:"required"`
	ReceiptURL string `json:"receipt_url"`
}

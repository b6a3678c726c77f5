package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vendora/internal/models/db_models"
)

// LedgerOp describes one balance-changing event. ReferenceKey must be
// unique per logical event; re-applying the same key is a no-op.
type LedgerOp struct {
	VendorID     uuid.UUID
	EntryType    db_models.LedgerEntryType
	Amount       decimal.Decimal // signed delta to available_balance
	ReferenceKey string
	CashoutID    *uuid.UUID
	PaymentID    *uuid.UUID
	Note         string
}

type IWalletRepository interface {
	GetOrCreateByVendor(ctx context.Context, vendorID uuid.UUID) (*db_models.Wallet, error)
	// Credit appends a positive ledger entry and bumps the balances in
	// one transaction. applied=false means the reference key had
	// already been used and nothing changed.
	Credit(ctx context.Context, op LedgerOp) (entry *db_models.WalletLedgerEntry, applied bool, err error)
	ListEntries(ctx context.Context, vendorID uuid.UUID, limit int) ([]db_models.WalletLedgerEntry, error)
}

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) IWalletRepository {
	return &WalletRepository{db: db}
}

func (w *WalletRepository) GetOrCreateByVendor(ctx context.Context, vendorID uuid.UUID) (*db_models.Wallet, error) {
	var wallet db_models.Wallet
	err := w.db.WithContext(ctx).
		Where(db_models.Wallet{VendorID: vendorID}).
		Attrs(db_models.Wallet{
			AvailableBalance: decimal.Zero,
			PendingBalance:   decimal.Zero,
			LifetimeEarned:   decimal.Zero,
			LifetimePaidOut:  decimal.Zero,
		}).
		FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (w *WalletRepository) Credit(ctx context.Context, op LedgerOp) (*db_models.WalletLedgerEntry, bool, error) {
	if !op.Amount.IsPositive() {
		return nil, false, fmt.Errorf("credit amount must be positive, got %s", op.Amount)
	}

	var entry *db_models.WalletLedgerEntry
	applied := false
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, op.VendorID)
		if err != nil {
			return err
		}

		entry, applied, err = appendLedgerEntry(tx, op)
		if err != nil || !applied {
			return err
		}

		return tx.Model(wallet).Updates(map[string]interface{}{
			"available_balance": wallet.AvailableBalance.Add(op.Amount),
			"lifetime_earned":   wallet.LifetimeEarned.Add(op.Amount),
		}).Error
	})
	if err != nil {
		return nil, false, err
	}
	return entry, applied, nil
}

func (w *WalletRepository) ListEntries(ctx context.Context, vendorID uuid.UUID, limit int) ([]db_models.WalletLedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var entries []db_models.WalletLedgerEntry
	err := w.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// lockWallet takes the vendor's wallet row FOR UPDATE, creating it
// first if the vendor has never earned. Settlement rewards and cashout
// mutations both serialize through this lock.
func lockWallet(tx *gorm.DB, vendorID uuid.UUID) (*db_models.Wallet, error) {
	var wallet db_models.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vendor_id = ?", vendorID).
		First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = db_models.Wallet{
			VendorID:         vendorID,
			AvailableBalance: decimal.Zero,
			PendingBalance:   decimal.Zero,
			LifetimeEarned:   decimal.Zero,
			LifetimePaidOut:  decimal.Zero,
		}
		if createErr := tx.Create(&wallet).Error; createErr != nil {
			return nil, createErr
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// appendLedgerEntry inserts the entry; a duplicate reference key means
// the event was applied before and reports applied=false, not an error.
// ON CONFLICT DO NOTHING keeps the surrounding transaction healthy (a
// raised 23505 would abort it).
func appendLedgerEntry(tx *gorm.DB, op LedgerOp) (*db_models.WalletLedgerEntry, bool, error) {
	entry := db_models.WalletLedgerEntry{
		VendorID:         op.VendorID,
		EntryType:        op.EntryType,
		Amount:           op.Amount,
		Status:           db_models.LedgerApplied,
		ReferenceKey:     op.ReferenceKey,
		CashoutRequestID: op.CashoutID,
		PaymentID:        op.PaymentID,
		Note:             op.Note,
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reference_key"}},
		DoNothing: true,
	}).Create(&entry)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	return &entry, true, nil
}

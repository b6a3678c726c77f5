package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vendora/internal/models/db_models"
	"vendora/pkg/utils"
)

type ICashoutRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.CashoutRequest, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]db_models.CashoutRequest, error)
	ListByStatus(ctx context.Context, status db_models.CashoutStatus, limit int) ([]db_models.CashoutRequest, error)

	// CreateRequested debits available_balance and creates the request
	// atomically; a failed debit aborts the request.
	CreateRequested(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal) (*db_models.CashoutRequest, error)

	// MarkApproved is a conditional requested|approved -> approved
	// update; re-approving is a no-op by design.
	MarkApproved(ctx context.Context, id uuid.UUID) error

	// Reject restores the debited amount through a deduplicated
	// cashout_revert ledger entry in the same transaction.
	Reject(ctx context.Context, id uuid.UUID, reason string) error

	// MarkPaid moves approved -> paid, bumping lifetime_paid_out and
	// recording the payout proof.
	MarkPaid(ctx context.Context, id uuid.UUID, utr, receiptURL string) error
}

type CashoutRepository struct {
	db *gorm.DB
}

func NewCashoutRepository(db *gorm.DB) ICashoutRepository {
	return &CashoutRepository{db: db}
}

func (c *CashoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.CashoutRequest, error) {
	var req db_models.CashoutRequest
	err := c.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (c *CashoutRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]db_models.CashoutRequest, error) {
	var reqs []db_models.CashoutRequest
	err := c.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("requested_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (c *CashoutRepository) ListByStatus(ctx context.Context, status db_models.CashoutStatus, limit int) ([]db_models.CashoutRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := c.db.WithContext(ctx).Order("requested_at ASC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var reqs []db_models.CashoutRequest
	err := q.Find(&reqs).Error
	return reqs, err
}

func (c *CashoutRepository) CreateRequested(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal) (*db_models.CashoutRequest, error) {
	var req *db_models.CashoutRequest
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, vendorID)
		if err != nil {
			return err
		}
		if wallet.AvailableBalance.LessThan(amount) {
			return fmt.Errorf("%w: requested %s, available %s",
				utils.ErrInsufficientBalance, amount, wallet.AvailableBalance)
		}

		req = &db_models.CashoutRequest{
			VendorID:    vendorID,
			Amount:      amount,
			Status:      db_models.CashoutRequested,
			RequestedAt: time.Now().Unix(),
		}
		if err := tx.Create(req).Error; err != nil {
			return err
		}

		_, applied, err := appendLedgerEntry(tx, LedgerOp{
			VendorID:     vendorID,
			EntryType:    db_models.EntryCashoutRequest,
			Amount:       amount.Neg(),
			ReferenceKey: fmt.Sprintf("cashout_request:%s", req.ID),
			CashoutID:    &req.ID,
		})
		if err != nil {
			return err
		}
		if !applied {
			return fmt.Errorf("ledger entry for new cashout %s already exists", req.ID)
		}

		return tx.Model(wallet).
			Update("available_balance", wallet.AvailableBalance.Sub(amount)).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (c *CashoutRepository) MarkApproved(ctx context.Context, id uuid.UUID) error {
	now := time.Now().Unix()
	res := c.db.WithContext(ctx).Model(&db_models.CashoutRequest{}).
		Where("id = ? AND status IN ?", id,
			[]db_models.CashoutStatus{db_models.CashoutRequested, db_models.CashoutApproved}).
		Updates(map[string]interface{}{
			"status":      db_models.CashoutApproved,
			"approved_at": gorm.Expr("COALESCE(approved_at, ?)", now),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: cashout %s is not approvable", utils.ErrInvalidState, id)
	}
	return nil
}

func (c *CashoutRepository) Reject(ctx context.Context, id uuid.UUID, reason string) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req db_models.CashoutRequest
		if err := tx.First(&req, "id = ?", id).Error; err != nil {
			return err
		}

		now := time.Now().Unix()
		res := tx.Model(&db_models.CashoutRequest{}).
			Where("id = ? AND status IN ?", id,
				[]db_models.CashoutStatus{db_models.CashoutRequested, db_models.CashoutApproved}).
			Updates(map[string]interface{}{
				"status":           db_models.CashoutRejected,
				"rejection_reason": reason,
				"rejected_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: cashout %s is not rejectable", utils.ErrInvalidState, id)
		}

		wallet, err := lockWallet(tx, req.VendorID)
		if err != nil {
			return err
		}
		_, applied, err := appendLedgerEntry(tx, LedgerOp{
			VendorID:     req.VendorID,
			EntryType:    db_models.EntryCashoutRevert,
			Amount:       req.Amount,
			ReferenceKey: fmt.Sprintf("cashout_revert:%s", req.ID),
			CashoutID:    &req.ID,
			Note:         reason,
		})
		if err != nil {
			return err
		}
		if !applied {
			// Revert already credited by an earlier attempt.
			return nil
		}

		return tx.Model(wallet).
			Update("available_balance", wallet.AvailableBalance.Add(req.Amount)).Error
	})
}

func (c *CashoutRepository) MarkPaid(ctx context.Context, id uuid.UUID, utr, receiptURL string) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req db_models.CashoutRequest
		if err := tx.First(&req, "id = ?", id).Error; err != nil {
			return err
		}

		now := time.Now().Unix()
		res := tx.Model(&db_models.CashoutRequest{}).
			Where("id = ? AND status = ?", id, db_models.CashoutApproved).
			Updates(map[string]interface{}{
				"status":      db_models.CashoutPaid,
				"utr":         utr,
				"receipt_url": receiptURL,
				"paid_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: cashout %s must be approved before payout", utils.ErrInvalidState, id)
		}

		wallet, err := lockWallet(tx, req.VendorID)
		if err != nil {
			return err
		}
		// Zero balance delta; the debit happened at request time. The
		// entry carries the payout proof into the ledger.
		_, applied, err := appendLedgerEntry(tx, LedgerOp{
			VendorID:     req.VendorID,
			EntryType:    db_models.EntryCashoutPaid,
			Amount:       decimal.Zero,
			ReferenceKey: fmt.Sprintf("cashout_paid:%s", req.ID),
			CashoutID:    &req.ID,
			Note:         "utr:" + utr,
		})
		if err != nil {
			return err
		}
		if !applied {
			return nil
		}

		return tx.Model(wallet).
			Update("lifetime_paid_out", wallet.LifetimePaidOut.Add(req.Amount)).Error
	})
}

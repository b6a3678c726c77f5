package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vendora/internal/models/db_models"
	"vendora/internal/models/response_models"
	"vendora/internal/repositories"
	"vendora/pkg/utils"
)

type IWalletService interface {
	GetWallet(ctx context.Context, vendorID uuid.UUID) (*response_models.WalletResponse, error)

	// CreditReferralReward pays the referrer their cut of a settled
	// payment's net amount. Keyed by payment id, so replays are no-ops.
	CreditReferralReward(ctx context.Context, referral *db_models.Referral, rule *db_models.ReferralRule, netAmount decimal.Decimal, paymentID uuid.UUID) error
}

type walletService struct {
	walletRepo repositories.IWalletRepository
	logger     *zap.Logger
}

func NewWalletService(walletRepo repositories.IWalletRepository, logger *zap.Logger) IWalletService {
	return &walletService{walletRepo: walletRepo, logger: logger}
}

func (w *walletService) GetWallet(ctx context.Context, vendorID uuid.UUID) (*response_models.WalletResponse, error) {
	wallet, err := w.walletRepo.GetOrCreateByVendor(ctx, vendorID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	entries, err := w.walletRepo.ListEntries(ctx, vendorID, 20)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := &response_models.WalletResponse{
		VendorID:         wallet.VendorID,
		AvailableBalance: wallet.AvailableBalance,
		PendingBalance:   wallet.PendingBalance,
		LifetimeEarned:   wallet.LifetimeEarned,
		LifetimePaidOut:  wallet.LifetimePaidOut,
		RecentEntries:    make([]response_models.WalletLedgerEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.RecentEntries = append(resp.RecentEntries, response_models.WalletLedgerEntry{
			ID:           e.ID,
			EntryType:    string(e.EntryType),
			Amount:       e.Amount,
			ReferenceKey: e.ReferenceKey,
			CreatedAt:    e.CreatedAt,
		})
	}
	return resp, nil
}

func (w *walletService) CreditReferralReward(ctx context.Context, referral *db_models.Referral, rule *db_models.ReferralRule, netAmount decimal.Decimal, paymentID uuid.UUID) error {
	reward := netAmount.Mul(rule.RewardPercent).Div(decimal.NewFromInt(100)).Round(2)
	if rule.RewardCap != nil && reward.GreaterThan(*rule.RewardCap) {
		reward = *rule.RewardCap
	}
	if !reward.IsPositive() {
		return nil
	}

	_, applied, err := w.walletRepo.Credit(ctx, repositories.LedgerOp{
		VendorID:     referral.ReferrerVendorID,
		EntryType:    db_models.EntryEarned,
		Amount:       reward,
		ReferenceKey: fmt.Sprintf("referral_reward:%s", paymentID),
		PaymentID:    &paymentID,
		Note:         fmt.Sprintf("referral of %s", referral.ReferredVendorID),
	})
	if err != nil {
		return err
	}
	if !applied {
		w.logger.Info("referral reward already credited",
			zap.String("payment_id", paymentID.String()))
	}
	return nil
}

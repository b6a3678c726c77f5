package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vendora/internal/models/db_models"
	"vendora/internal/repositories"
)

type fakeWalletRepo struct {
	wallets map[uuid.UUID]*db_models.Wallet
	entries []db_models.WalletLedgerEntry
	seen    map[string]bool
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		wallets: map[uuid.UUID]*db_models.Wallet{},
		seen:    map[string]bool{},
	}
}

func (f *fakeWalletRepo) GetOrCreateByVendor(_ context.Context, vendorID uuid.UUID) (*db_models.Wallet, error) {
	if w, ok := f.wallets[vendorID]; ok {
		return w, nil
	}
	w := &db_models.Wallet{
		BaseModel:        db_models.BaseModel{ID: uuid.New()},
		VendorID:         vendorID,
		AvailableBalance: decimal.Zero,
		PendingBalance:   decimal.Zero,
		LifetimeEarned:   decimal.Zero,
		LifetimePaidOut:  decimal.Zero,
	}
	f.wallets[vendorID] = w
	return w, nil
}

func (f *fakeWalletRepo) Credit(ctx context.Context, op repositories.LedgerOp) (*db_models.WalletLedgerEntry, bool, error) {
	if !op.Amount.IsPositive() {
		return nil, false, fmt.Errorf("credit amount must be positive, got %s", op.Amount)
	}
	if f.seen[op.ReferenceKey] {
		return nil, false, nil
	}
	f.seen[op.ReferenceKey] = true

	wallet, _ := f.GetOrCreateByVendor(ctx, op.VendorID)
	wallet.AvailableBalance = wallet.AvailableBalance.Add(op.Amount)
	wallet.LifetimeEarned = wallet.LifetimeEarned.Add(op.Amount)

	entry := db_models.WalletLedgerEntry{
		BaseModel:    db_models.BaseModel{ID: uuid.New()},
		VendorID:     op.VendorID,
		EntryType:    op.EntryType,
		Amount:       op.Amount,
		Status:       db_models.LedgerApplied,
		ReferenceKey: op.ReferenceKey,
		PaymentID:    op.PaymentID,
		Note:         op.Note,
	}
	f.entries = append(f.entries, entry)
	return &entry, true, nil
}

func (f *fakeWalletRepo) ListEntries(_ context.Context, vendorID uuid.UUID, _ int) ([]db_models.WalletLedgerEntry, error) {
	var out []db_models.WalletLedgerEntry
	for _, e := range f.entries {
		if e.VendorID == vendorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func rewardFixture(percent string, cap *decimal.Decimal) (*db_models.Referral, *db_models.ReferralRule) {
	referral := &db_models.Referral{
		BaseModel:        db_models.BaseModel{ID: uuid.New()},
		ReferrerVendorID: uuid.New(),
		ReferredVendorID: uuid.New(),
		OfferCode:        "FRIEND-50",
		IsActive:         true,
	}
	rule := &db_models.ReferralRule{
		BaseModel:     db_models.BaseModel{ID: uuid.New()},
		PlanID:        uuid.New(),
		RewardPercent: dec(percent),
		RewardCap:     cap,
		IsActive:      true,
	}
	return referral, rule
}

func TestCreditReferralRewardComputesPercentOfNet(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := NewWalletService(repo, zap.NewNop())
	referral, rule := rewardFixture("10", nil)
	paymentID := uuid.New()

	err := svc.CreditReferralReward(context.Background(), referral, rule, dec("900"), paymentID)
	require.NoError(t, err)

	wallet := repo.wallets[referral.ReferrerVendorID]
	require.NotNil(t, wallet)
	assert.True(t, wallet.AvailableBalance.Equal(dec("90")))
	assert.True(t, wallet.LifetimeEarned.Equal(dec("90")))

	require.Len(t, repo.entries, 1)
	assert.Equal(t, db_models.EntryEarned, repo.entries[0].EntryType)
	assert.Equal(t, fmt.Sprintf("referral_reward:%s", paymentID), repo.entries[0].ReferenceKey)
}

func TestCreditReferralRewardAppliesCap(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := NewWalletService(repo, zap.NewNop())
	cap := dec("50")
	referral, rule := rewardFixture("10", &cap)

	err := svc.CreditReferralReward(context.Background(), referral, rule, dec("900"), uuid.New())
	require.NoError(t, err)

	wallet := repo.wallets[referral.ReferrerVendorID]
	assert.True(t, wallet.AvailableBalance.Equal(dec("50")))
}

func TestCreditReferralRewardSkipsZeroReward(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := NewWalletService(repo, zap.NewNop())
	referral, rule := rewardFixture("0", nil)

	err := svc.CreditReferralReward(context.Background(), referral, rule, dec("900"), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, repo.entries)
}

func TestCreditReferralRewardReplayIsNoOp(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := NewWalletService(repo, zap.NewNop())
	referral, rule := rewardFixture("10", nil)
	paymentID := uuid.New()

	require.NoError(t, svc.CreditReferralReward(context.Background(), referral, rule, dec("900"), paymentID))
	require.NoError(t, svc.CreditReferralReward(context.Background(), referral, rule, dec("900"), paymentID))

	wallet := repo.wallets[referral.ReferrerVendorID]
	assert.True(t, wallet.AvailableBalance.Equal(dec("90")))
	assert.Len(t, repo.entries, 1)
}

func TestGetWalletReturnsBalancesAndEntries(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := NewWalletService(repo, zap.NewNop())
	referral, rule := rewardFixture("10", nil)

	require.NoError(t, svc.CreditReferralReward(context.Background(), referral, rule, dec("900"), uuid.New()))

	resp, err := svc.GetWallet(context.Background(), referral.ReferrerVendorID)
	require.NoError(t, err)

	assert.Equal(t, referral.ReferrerVendorID, resp.VendorID)
	assert.True(t, resp.AvailableBalance.Equal(dec("90")))
	assert.True(t, resp.LifetimePaidOut.IsZero())
	require.Len(t, resp.RecentEntries, 1)
	assert.Equal(t, string(db_models.EntryEarned), resp.RecentEntries[0].EntryType)
}

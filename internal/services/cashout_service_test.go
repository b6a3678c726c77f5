package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vendora/internal/models/db_models"
	"vendora/pkg/utils"
)

// fakeCashoutRepo mirrors the repository contract in memory: the
// request debit, the deduplicated revert credit, and the conditional
// status updates, so the service tests exercise the same balance
// arithmetic the real transactions perform.
type fakeCashoutRepo struct {
	requests   map[uuid.UUID]*db_models.CashoutRequest
	ledgerKeys map[string]decimal.Decimal // reference key -> balance delta
	available  decimal.Decimal
	paidOut    decimal.Decimal
}

func newFakeCashoutRepo(available string) *fakeCashoutRepo {
	return &fakeCashoutRepo{
		requests:   map[uuid.UUID]*db_models.CashoutRequest{},
		ledgerKeys: map[string]decimal.Decimal{},
		available:  dec(available),
		paidOut:    decimal.Zero,
	}
}

func (f *fakeCashoutRepo) GetByID(_ context.Context, id uuid.UUID) (*db_models.CashoutRequest, error) {
	return f.requests[id], nil
}

func (f *fakeCashoutRepo) ListByVendor(_ context.Context, vendorID uuid.UUID) ([]db_models.CashoutRequest, error) {
	var out []db_models.CashoutRequest
	for _, req := range f.requests {
		if req.VendorID == vendorID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeCashoutRepo) ListByStatus(_ context.Context, status db_models.CashoutStatus, _ int) ([]db_models.CashoutRequest, error) {
	var out []db_models.CashoutRequest
	for _, req := range f.requests {
		if status == "" || req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeCashoutRepo) CreateRequested(_ context.Context, vendorID uuid.UUID, amount decimal.Decimal) (*db_models.CashoutRequest, error) {
	if f.available.LessThan(amount) {
		return nil, fmt.Errorf("%w: requested %s, available %s", utils.ErrInsufficientBalance, amount, f.available)
	}
	req := &db_models.CashoutRequest{
		BaseModel:   db_models.BaseModel{ID: uuid.New()},
		VendorID:    vendorID,
		Amount:      amount,
		Status:      db_models.CashoutRequested,
		RequestedAt: time.Now().Unix(),
	}
	f.requests[req.ID] = req
	f.ledgerKeys[fmt.Sprintf("cashout_request:%s", req.ID)] = amount.Neg()
	f.available = f.available.Sub(amount)
	return req, nil
}

func (f *fakeCashoutRepo) MarkApproved(_ context.Context, id uuid.UUID) error {
	req := f.requests[id]
	if req == nil || (req.Status != db_models.CashoutRequested && req.Status != db_models.CashoutApproved) {
		return fmt.Errorf("%w: cashout %s is not approvable", utils.ErrInvalidState, id)
	}
	req.Status = db_models.CashoutApproved
	if req.ApprovedAt == nil {
		now := time.Now().Unix()
		req.ApprovedAt = &now
	}
	return nil
}

func (f *fakeCashoutRepo) Reject(_ context.Context, id uuid.UUID, reason string) error {
	req := f.requests[id]
	if req == nil || (req.Status != db_models.CashoutRequested && req.Status != db_models.CashoutApproved) {
		return fmt.Errorf("%w: cashout %s is not rejectable", utils.ErrInvalidState, id)
	}
	req.Status = db_models.CashoutRejected
	req.RejectionReason = &reason

	key := fmt.Sprintf("cashout_revert:%s", id)
	if _, done := f.ledgerKeys[key]; !done {
		f.ledgerKeys[key] = req.Amount
		f.available = f.available.Add(req.Amount)
	}
	return nil
}

func (f *fakeCashoutRepo) MarkPaid(_ context.Context, id uuid.UUID, utr, receiptURL string) error {
	req := f.requests[id]
	if req == nil || req.Status != db_models.CashoutApproved {
		return fmt.Errorf("%w: cashout %s must be approved before payout", utils.ErrInvalidState, id)
	}
	req.Status = db_models.CashoutPaid
	req.UTR = utr
	req.ReceiptURL = receiptURL

	key := fmt.Sprintf("cashout_paid:%s", id)
	if _, done := f.ledgerKeys[key]; !done {
		f.ledgerKeys[key] = decimal.Zero
		f.paidOut = f.paidOut.Add(req.Amount)
	}
	return nil
}

func newCashoutHarness(available string) (ICashoutService, *fakeCashoutRepo) {
	repo := newFakeCashoutRepo(available)
	return NewCashoutService(repo, zap.NewNop()), repo
}

func TestCashoutRequestDebitsImmediately(t *testing.T) {
	svc, repo := newCashoutHarness("500")
	vendorID := uuid.New()

	resp, err := svc.Request(context.Background(), vendorID, dec("500"))
	require.NoError(t, err)

	assert.Equal(t, string(db_models.CashoutRequested), resp.Status)
	assert.True(t, repo.available.IsZero())
}

func TestCashoutRequestInsufficientBalance(t *testing.T) {
	svc, repo := newCashoutHarness("500")

	_, err := svc.Request(context.Background(), uuid.New(), dec("600"))
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrInsufficientBalance)
	assert.True(t, repo.available.Equal(dec("500")))
}

func TestCashoutRequestRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newCashoutHarness("500")

	_, err := svc.Request(context.Background(), uuid.New(), decimal.Zero)
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.Request(context.Background(), uuid.New(), dec("-10"))
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestCashoutRejectRestoresBalanceOnce(t *testing.T) {
	svc, repo := newCashoutHarness("500")

	resp, err := svc.Request(context.Background(), uuid.New(), dec("300"))
	require.NoError(t, err)
	assert.True(t, repo.available.Equal(dec("200")))

	rejected, err := svc.Reject(context.Background(), resp.ID, "bank details mismatch")
	require.NoError(t, err)
	assert.Equal(t, string(db_models.CashoutRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.True(t, repo.available.Equal(dec("500")))

	// A second reject is an illegal transition out of a terminal state,
	// and the revert credit is never applied twice.
	_, err = svc.Reject(context.Background(), resp.ID, "again")
	assert.ErrorIs(t, err, utils.ErrInvalidState)
	assert.True(t, repo.available.Equal(dec("500")))
}

func TestCashoutRejectRequiresReason(t *testing.T) {
	svc, repo := newCashoutHarness("500")

	resp, err := svc.Request(context.Background(), uuid.New(), dec("100"))
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), resp.ID, "   ")
	assert.ErrorIs(t, err, utils.ErrValidation)
	assert.Equal(t, db_models.CashoutRequested, repo.requests[resp.ID].Status)
}

func TestCashoutApproveIsIdempotent(t *testing.T) {
	svc, repo := newCashoutHarness("500")

	resp, err := svc.Request(context.Background(), uuid.New(), dec("200"))
	require.NoError(t, err)

	first, err := svc.Approve(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(db_models.CashoutApproved), first.Status)
	balanceAfterFirst := repo.available

	second, err := svc.Approve(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(db_models.CashoutApproved), second.Status)
	assert.True(t, repo.available.Equal(balanceAfterFirst))
}

func TestCashoutMarkPaidRequiresApproval(t *testing.T) {
	svc, _ := newCashoutHarness("500")

	resp, err := svc.Request(context.Background(), uuid.New(), dec("200"))
	require.NoError(t, err)

	_, err = svc.MarkPaid(context.Background(), resp.ID, "UTR123", "")
	assert.ErrorIs(t, err, utils.ErrInvalidState)
}

func TestCashoutMarkPaidRequiresUTR(t *testing.T) {
	svc, _ := newCashoutHarness("500")

	resp, err := svc.Request(context.Background(), uuid.New(), dec("200"))
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), resp.ID)
	require.NoError(t, err)

	_, err = svc.MarkPaid(context.Background(), resp.ID, "", "")
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestCashoutRejectAfterPaidFails(t *testing.T) {
	svc, repo := newCashoutHarness("500")

	resp, err := svc.Request(context.Background(), uuid.New(), dec("200"))
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), resp.ID)
	require.NoError(t, err)
	_, err = svc.MarkPaid(context.Background(), resp.ID, "UTR123", "https://bank/receipt.pdf")
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), resp.ID, "too late")
	assert.ErrorIs(t, err, utils.ErrInvalidState)
	// The debit from request time stands; no revert after payout.
	assert.True(t, repo.available.Equal(dec("300")))
}

func TestCashoutFullLifecycle(t *testing.T) {
	svc, repo := newCashoutHarness("500")
	vendorID := uuid.New()

	// Request the full balance, get rejected, request again, then pay.
	first, err := svc.Request(context.Background(), vendorID, dec("500"))
	require.NoError(t, err)
	assert.True(t, repo.available.IsZero())

	_, err = svc.Reject(context.Background(), first.ID, "wrong account")
	require.NoError(t, err)
	assert.True(t, repo.available.Equal(dec("500")))

	second, err := svc.Request(context.Background(), vendorID, dec("500"))
	require.NoError(t, err)
	assert.True(t, repo.available.IsZero())

	_, err = svc.Approve(context.Background(), second.ID)
	require.NoError(t, err)

	paid, err := svc.MarkPaid(context.Background(), second.ID, "UTR456", "")
	require.NoError(t, err)
	assert.Equal(t, string(db_models.CashoutPaid), paid.Status)
	assert.Equal(t, "UTR456", paid.UTR)

	assert.True(t, repo.available.IsZero())
	assert.True(t, repo.paidOut.Equal(dec("500")))
	assert.False(t, repo.available.IsNegative())
}

func TestCashoutUnknownID(t *testing.T) {
	svc, _ := newCashoutHarness("500")

	_, err := svc.Approve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCashoutListByStatusValidation(t *testing.T) {
	svc, _ := newCashoutHarness("500")

	_, err := svc.ListByStatus(context.Background(), "settled")
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.ListByStatus(context.Background(), "Requested")
	assert.NoError(t, err)
}

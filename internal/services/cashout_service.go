package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vendora/internal/models/db_models"
	"vendora/internal/models/response_models"
	"vendora/internal/repositories"
	"vendora/pkg/utils"
)

// Transitions the state machine admits. Approve of an already-approved
// request is an intentional no-op; everything else not listed fails
// with INVALID_STATE.
var allowedCashoutTransitions = map[db_models.CashoutStatus]map[db_models.CashoutStatus]bool{
	db_models.CashoutRequested: {
		db_models.CashoutApproved: true,
		db_models.CashoutRejected: true,
	},
	db_models.CashoutApproved: {
		db_models.CashoutApproved: true, // idempotent re-approve
		db_models.CashoutRejected: true,
		db_models.CashoutPaid:     true,
	},
}

type ICashoutService interface {
	Request(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal) (*response_models.CashoutResponse, error)
	Approve(ctx context.Context, id uuid.UUID) (*response_models.CashoutResponse, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*response_models.CashoutResponse, error)
	MarkPaid(ctx context.Context, id uuid.UUID, utr, receiptURL string) (*response_models.CashoutResponse, error)
	ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]response_models.CashoutResponse, error)
	ListByStatus(ctx context.Context, status string) ([]response_models.CashoutResponse, error)
}

type cashoutService struct {
	cashoutRepo repositories.ICashoutRepository
	logger      *zap.Logger
}

func NewCashoutService(cashoutRepo repositories.ICashoutRepository, logger *zap.Logger) ICashoutService {
	return &cashoutService{cashoutRepo: cashoutRepo, logger: logger}
}

func (c *cashoutService) Request(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal) (*response_models.CashoutResponse, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: cashout amount must be positive", utils.ErrValidation)
	}

	req, err := c.cashoutRepo.CreateRequested(ctx, vendorID, amount)
	if err != nil {
		return nil, err
	}

	c.logger.Info("cashout requested",
		zap.String("cashout_id", req.ID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.String("amount", amount.String()))
	return toCashoutResponse(req), nil
}

// transition loads the request and checks the target against the table
// before handing off to the conditional repository update. The update
// itself re-checks status, so racing admins cannot double-apply.
func (c *cashoutService) transition(ctx context.Context, id uuid.UUID, target db_models.CashoutStatus) (*db_models.CashoutRequest, error) {
	req, err := c.cashoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if req == nil {
		return nil, fmt.Errorf("%w: cashout %s", utils.ErrNotFound, id)
	}
	if !allowedCashoutTransitions[req.Status][target] {
		return nil, fmt.Errorf("%w: cashout %s is %s, cannot move to %s",
			utils.ErrInvalidState, id, req.Status, target)
	}
	return req, nil
}

func (c *cashoutService) Approve(ctx context.Context, id uuid.UUID) (*response_models.CashoutResponse, error) {
	req, err := c.transition(ctx, id, db_models.CashoutApproved)
	if err != nil {
		return nil, err
	}
	if req.Status == db_models.CashoutApproved {
		// Already approved; no balance was mutated then and none is now.
		return toCashoutResponse(req), nil
	}

	if err := c.cashoutRepo.MarkApproved(ctx, id); err != nil {
		return nil, err
	}
	return c.reload(ctx, id)
}

func (c *cashoutService) Reject(ctx context.Context, id uuid.UUID, reason string) (*response_models.CashoutResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", utils.ErrValidation)
	}
	if _, err := c.transition(ctx, id, db_models.CashoutRejected); err != nil {
		return nil, err
	}

	if err := c.cashoutRepo.Reject(ctx, id, reason); err != nil {
		return nil, err
	}
	return c.reload(ctx, id)
}

func (c *cashoutService) MarkPaid(ctx context.Context, id uuid.UUID, utr, receiptURL string) (*response_models.CashoutResponse, error) {
	if strings.TrimSpace(utr) == "" {
		return nil, fmt.Errorf("%w: payout reference (utr) is required", utils.ErrValidation)
	}
	if _, err := c.transition(ctx, id, db_models.CashoutPaid); err != nil {
		return nil, err
	}

	if err := c.cashoutRepo.MarkPaid(ctx, id, utr, receiptURL); err != nil {
		return nil, err
	}
	return c.reload(ctx, id)
}

func (c *cashoutService) ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]response_models.CashoutResponse, error) {
	reqs, err := c.cashoutRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toCashoutResponses(reqs), nil
}

func (c *cashoutService) ListByStatus(ctx context.Context, status string) ([]response_models.CashoutResponse, error) {
	s := db_models.CashoutStatus(strings.ToLower(strings.TrimSpace(status)))
	switch s {
	case "", db_models.CashoutRequested, db_models.CashoutApproved, db_models.CashoutRejected, db_models.CashoutPaid:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", utils.ErrValidation, status)
	}

	reqs, err := c.cashoutRepo.ListByStatus(ctx, s, 50)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toCashoutResponses(reqs), nil
}

func (c *cashoutService) reload(ctx context.Context, id uuid.UUID) (*response_models.CashoutResponse, error) {
	req, err := c.cashoutRepo.GetByID(ctx, id)
	if err != nil || req == nil {
		return nil, utils.ErrDatabaseError
	}
	return toCashoutResponse(req), nil
}

func toCashoutResponse(req *db_models.CashoutRequest) *response_models.CashoutResponse {
	return &response_models.CashoutResponse{
		ID:              req.ID,
		VendorID:        req.VendorID,
		Amount:          req.Amount,
		Status:          string(req.Status),
		RejectionReason: req.RejectionReason,
		UTR:             req.UTR,
		ReceiptURL:      req.ReceiptURL,
		RequestedAt:     req.RequestedAt,
	}
}

func toCashoutResponses(reqs []db_models.CashoutRequest) []response_models.CashoutResponse {
	out := make([]response_models.CashoutResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, *toCashoutResponse(&reqs[i]))
	}
	return out
}

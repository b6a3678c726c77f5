package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vendora/internal/gateway"
	"vendora/internal/models/db_models"
	"vendora/internal/models/request_models"
	"vendora/internal/models/response_models"
	"vendora/internal/repositories"
	"vendora/pkg/utils"
)

type ISettlementService interface {
	// Initiate is purely advisory: it prices the checkout and opens a
	// gateway order. No rows are written, so a timed-out or abandoned
	// initiate is always safe to retry.
	Initiate(ctx context.Context, req request_models.InitiatePaymentRequest) (*response_models.InitiatePaymentResponse, error)

	// Verify checks the gateway signature, re-resolves the offer, and
	// activates the subscription exactly once per gateway payment id.
	Verify(ctx context.Context, req request_models.VerifyPaymentRequest) (*response_models.VerifyPaymentResponse, error)

	CurrentSubscription(ctx context.Context, vendorID uuid.UUID) (*response_models.SubscriptionStatusResponse, error)
}

type settlementService struct {
	vendorRepo     repositories.IVendorRepository
	planRepo       repositories.IPlanRepository
	settlementRepo repositories.ISettlementRepository
	offers         IOfferService
	wallet         IWalletService
	gw             gateway.PaymentGateway
	outbox         *OutboxDispatcher
	currency       string
	logger         *zap.Logger
	now            func() time.Time
}

func NewSettlementService(
	vendorRepo repositories.IVendorRepository,
	planRepo repositories.IPlanRepository,
	settlementRepo repositories.ISettlementRepository,
	offers IOfferService,
	wallet IWalletService,
	gw gateway.PaymentGateway,
	outbox *OutboxDispatcher,
	currency string,
	logger *zap.Logger,
) ISettlementService {
	return &settlementService{
		vendorRepo:     vendorRepo,
		planRepo:       planRepo,
		settlementRepo: settlementRepo,
		offers:         offers,
		wallet:         wallet,
		gw:             gw,
		outbox:         outbox,
		currency:       currency,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *settlementService) loadVendorAndPlan(ctx context.Context, vendorID, planID uuid.UUID) (*db_models.Vendor, *db_models.Plan, error) {
	vendor, err := s.vendorRepo.GetVendorByID(ctx, vendorID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if vendor == nil {
		return nil, nil, fmt.Errorf("%w: vendor %s", utils.ErrNotFound, vendorID)
	}

	plan, err := s.planRepo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if plan == nil || !plan.IsActive {
		return nil, nil, fmt.Errorf("%w: plan %s", utils.ErrNotFound, planID)
	}
	if !plan.Price.IsPositive() {
		return nil, nil, fmt.Errorf("%w: plan %s is not billable", utils.ErrValidation, plan.Code)
	}
	return vendor, plan, nil
}

func (s *settlementService) Initiate(ctx context.Context, req request_models.InitiatePaymentRequest) (*response_models.InitiatePaymentResponse, error) {
	vendor, plan, err := s.loadVendorAndPlan(ctx, req.VendorID, req.PlanID)
	if err != nil {
		return nil, err
	}

	offer, err := s.offers.Resolve(ctx, req.CouponCode, vendor, plan, plan.Price, true)
	if err != nil {
		return nil, err
	}

	amountMinor := utils.ToMinorUnits(offer.NetAmount)
	receipt := fmt.Sprintf("sub_%.8s_%d", vendor.ID.String(), s.now().Unix())
	order, err := s.gw.CreateOrder(ctx, amountMinor, s.currency, receipt, map[string]interface{}{
		"vendor_id": vendor.ID.String(),
		"plan_id":   plan.ID.String(),
	})
	if err != nil {
		return nil, err
	}

	return &response_models.InitiatePaymentResponse{
		OrderID:        order.ID,
		AmountMinor:    order.Amount,
		Currency:       order.Currency,
		BaseAmount:     plan.Price,
		DiscountAmount: offer.DiscountAmount,
		NetAmount:      offer.NetAmount,
		OfferType:      string(offer.Type),
		OfferCode:      offer.Code,
	}, nil
}

func (s *settlementService) Verify(ctx context.Context, req request_models.VerifyPaymentRequest) (*response_models.VerifyPaymentResponse, error) {
	// Authenticity first: nothing is written before the signature holds.
	if !s.gw.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return nil, fmt.Errorf("%w: payment %s", utils.ErrAuthenticity, req.PaymentID)
	}

	if prior, err := s.settlementRepo.GetPaymentByGatewayPaymentID(ctx, req.PaymentID); err != nil {
		return nil, utils.ErrDatabaseError
	} else if prior != nil {
		return s.priorResult(ctx, prior)
	}

	vendor, plan, err := s.loadVendorAndPlan(ctx, req.VendorID, req.PlanID)
	if err != nil {
		return nil, err
	}

	// Re-resolve rather than trusting the amount computed at initiate;
	// lenient because the vendor has already paid and cannot be blocked
	// here. An offer gone stale means full price, not failure.
	offer, err := s.offers.Resolve(ctx, req.CouponCode, vendor, plan, plan.Price, false)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	payment, sub := s.buildSettlement(req, vendor, plan, offer)
	err = s.settlementRepo.CreateSettlement(ctx, payment, sub, buildUsage(vendor, offer))
	if errors.Is(err, repositories.ErrCouponExhausted) {
		// The coupon's last slot went to a racing request between
		// resolution and commit. Settle at full price.
		s.logger.Warn("coupon exhausted during settlement, retrying at full price",
			zap.String("coupon", offer.Code),
			zap.String("gateway_payment_id", req.PaymentID))
		offer, err = s.offers.Resolve(ctx, "", vendor, plan, plan.Price, false)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		payment, sub = s.buildSettlement(req, vendor, plan, offer)
		err = s.settlementRepo.CreateSettlement(ctx, payment, sub, buildUsage(vendor, offer))
	}
	if errors.Is(err, repositories.ErrAlreadySettled) {
		prior, loadErr := s.settlementRepo.GetPaymentByGatewayPaymentID(ctx, req.PaymentID)
		if loadErr != nil || prior == nil {
			return nil, utils.ErrDatabaseError
		}
		return s.priorResult(ctx, prior)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	// Referral reward is credited after the payment exists. A failure
	// here is logged and swallowed; the subscription stays active.
	if offer.Type == db_models.OfferReferral && offer.Referral != nil {
		if err := s.wallet.CreditReferralReward(ctx, offer.Referral, offer.ReferralRule, offer.NetAmount, payment.ID); err != nil {
			s.logger.Error("referral reward credit failed",
				zap.String("payment_id", payment.ID.String()),
				zap.String("referrer", offer.Referral.ReferrerVendorID.String()),
				zap.Error(err))
		}
	}

	s.outbox.Dispatch(ctx, []SideEffect{{
		Kind:    EffectPaymentConfirmation,
		To:      vendor.Email,
		Subject: fmt.Sprintf("Your %s subscription is active", plan.Name),
		Body: fmt.Sprintf("Payment of %s %s received. Your %s subscription runs until %s.",
			s.currency, offer.NetAmount, plan.Name,
			time.Unix(sub.EndsAt, 0).UTC().Format("2006-01-02")),
	}})

	return &response_models.VerifyPaymentResponse{
		PaymentID:        payment.ID,
		SubscriptionID:   sub.ID,
		GatewayPaymentID: req.PaymentID,
		NetAmount:        offer.NetAmount,
		DiscountAmount:   offer.DiscountAmount,
		OfferType:        string(offer.Type),
		StartsAt:         sub.StartsAt,
		EndsAt:           sub.EndsAt,
	}, nil
}

func (s *settlementService) buildSettlement(req request_models.VerifyPaymentRequest, vendor *db_models.Vendor, plan *db_models.Plan, offer OfferResult) (*db_models.Payment, *db_models.Subscription) {
	now := s.now()
	sub := &db_models.Subscription{
		VendorID: vendor.ID,
		PlanID:   plan.ID,
		Status:   db_models.SubStatusActive,
		StartsAt: now.Unix(),
		EndsAt:   now.AddDate(0, 0, int(plan.Duration())).Unix(),
	}

	payment := &db_models.Payment{
		VendorID:         vendor.ID,
		PlanID:           plan.ID,
		GatewayOrderID:   req.OrderID,
		GatewayPaymentID: req.PaymentID,
		Amount:           plan.Price,
		DiscountAmount:   offer.DiscountAmount,
		NetAmount:        offer.NetAmount,
		Currency:         s.currency,
		Status:           db_models.PaymentCaptured,
	}
	if offer.Type != "" {
		t := offer.Type
		code := offer.Code
		payment.OfferType = &t
		payment.OfferCode = &code
	}
	if offer.ReferralRule != nil {
		payment.ReferralRuleID = &offer.ReferralRule.ID
	}
	return payment, sub
}

func buildUsage(vendor *db_models.Vendor, offer OfferResult) *db_models.CouponUsage {
	if offer.Type != db_models.OfferCoupon || offer.CouponID == nil {
		return nil
	}
	return &db_models.CouponUsage{
		CouponID:    *offer.CouponID,
		VendorID:    vendor.ID,
		AmountSaved: offer.DiscountAmount,
	}
}

func (s *settlementService) priorResult(ctx context.Context, prior *db_models.Payment) (*response_models.VerifyPaymentResponse, error) {
	resp := &response_models.VerifyPaymentResponse{
		PaymentID:        prior.ID,
		SubscriptionID:   prior.SubscriptionID,
		GatewayPaymentID: prior.GatewayPaymentID,
		NetAmount:        prior.NetAmount,
		DiscountAmount:   prior.DiscountAmount,
		AlreadySettled:   true,
	}
	if prior.OfferType != nil {
		resp.OfferType = string(*prior.OfferType)
	}
	if sub, err := s.settlementRepo.GetSubscriptionByID(ctx, prior.SubscriptionID); err == nil && sub != nil {
		resp.StartsAt = sub.StartsAt
		resp.EndsAt = sub.EndsAt
	}
	return resp, nil
}

func (s *settlementService) CurrentSubscription(ctx context.Context, vendorID uuid.UUID) (*response_models.SubscriptionStatusResponse, error) {
	sub, err := s.settlementRepo.GetActiveSubscription(ctx, vendorID, s.now().Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: no active subscription for vendor %s", utils.ErrNotFound, vendorID)
	}

	resp := &response_models.SubscriptionStatusResponse{
		VendorID: sub.VendorID,
		PlanID:   sub.PlanID,
		Status:   string(sub.Status),
		StartsAt: sub.StartsAt,
		EndsAt:   sub.EndsAt,
	}
	if plan, err := s.planRepo.GetPlanByID(ctx, sub.PlanID); err == nil && plan != nil {
		resp.PlanCode = plan.Code
	}
	return resp, nil
}

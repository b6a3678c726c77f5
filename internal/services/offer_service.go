package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vendora/internal/models/db_models"
	"vendora/internal/models/response_models"
	"vendora/internal/repositories"
	"vendora/pkg/utils"
)

// OfferResult is the single discount decision for one checkout. Type
// is empty when no offer applies and the vendor pays full price. A
// settlement never carries both a coupon and a referral.
type OfferResult struct {
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
	Type           db_models.OfferType // "" when no offer applies
	Code           string
	CouponID       *uuid.UUID
	Referral       *db_models.Referral
	ReferralRule   *db_models.ReferralRule
}

type IOfferService interface {
	// Resolve picks at most one discount for (vendor, plan, code, now).
	// Discounts are never trusted from the client: the orchestrator
	// calls this both at initiate and again at verify. strict surfaces
	// coupon validation failures instead of silently falling back.
	Resolve(ctx context.Context, code string, vendor *db_models.Vendor, plan *db_models.Plan, baseAmount decimal.Decimal, strict bool) (OfferResult, error)

	ListReferralOffers(ctx context.Context, vendorID uuid.UUID) ([]response_models.ReferralOfferResponse, error)
}

type offerService struct {
	couponRepo   repositories.ICouponRepository
	referralRepo repositories.IReferralRepository
	planRepo     repositories.IPlanRepository
	now          func() time.Time
}

func NewOfferService(
	couponRepo repositories.ICouponRepository,
	referralRepo repositories.IReferralRepository,
	planRepo repositories.IPlanRepository,
) IOfferService {
	return &offerService{
		couponRepo:   couponRepo,
		referralRepo: referralRepo,
		planRepo:     planRepo,
		now:          time.Now,
	}
}

func (o *offerService) Resolve(ctx context.Context, code string, vendor *db_models.Vendor, plan *db_models.Plan, baseAmount decimal.Decimal, strict bool) (OfferResult, error) {
	none := OfferResult{DiscountAmount: decimal.Zero, NetAmount: baseAmount}
	if !baseAmount.IsPositive() {
		return none, nil
	}

	code = strings.TrimSpace(code)
	var couponReason string

	if code != "" {
		coupon, err := o.couponRepo.GetByCode(ctx, code)
		if err != nil {
			return none, err
		}
		if coupon == nil {
			// Not necessarily an error: the code may be the vendor's
			// referral offer code, checked below.
			couponReason = fmt.Sprintf("coupon %q not found or inactive", code)
		} else if reason := o.validateCoupon(coupon, vendor, plan); reason != "" {
			if strict {
				return none, fmt.Errorf("%w: %s", utils.ErrValidation, reason)
			}
			couponReason = reason
		} else {
			discount := couponDiscount(coupon, baseAmount)
			return OfferResult{
				DiscountAmount: discount,
				NetAmount:      baseAmount.Sub(discount),
				Type:           db_models.OfferCoupon,
				Code:           coupon.Code,
				CouponID:       &coupon.ID,
			}, nil
		}
	}

	referral, rule, err := o.referralRepo.GetOfferForVendorPlan(ctx, vendor.ID, plan.ID, o.now().Unix())
	if err != nil {
		return none, err
	}
	if referral != nil && rule != nil {
		// A supplied code must be the referral's own code to claim the
		// referral discount.
		if code == "" || strings.EqualFold(code, referral.OfferCode) {
			discount := referralDiscount(rule, baseAmount)
			if discount.IsPositive() {
				return OfferResult{
					DiscountAmount: discount,
					NetAmount:      baseAmount.Sub(discount),
					Type:           db_models.OfferReferral,
					Code:           referral.OfferCode,
					Referral:       referral,
					ReferralRule:   rule,
				}, nil
			}
		}
	}

	if strict && couponReason != "" {
		return none, fmt.Errorf("%w: %s", utils.ErrValidation, couponReason)
	}
	// Silent fallback: checkout proceeds at full price.
	return none, nil
}

// validateCoupon runs the check sequence in order and returns the first
// human-readable failure, or "" when the coupon is usable.
func (o *offerService) validateCoupon(coupon *db_models.Coupon, vendor *db_models.Vendor, plan *db_models.Plan) string {
	if coupon.Expired(o.now().Unix()) {
		return fmt.Sprintf("coupon %s has expired", coupon.Code)
	}
	if coupon.Exhausted() {
		return fmt.Sprintf("coupon %s has reached its usage limit", coupon.Code)
	}
	if !db_models.ParseScope(coupon.VendorScope).Matches(vendor.ID.String(), vendor.PublicCode, vendor.Email) {
		return fmt.Sprintf("coupon %s is not applicable to this vendor", coupon.Code)
	}
	if !db_models.ParseScope(coupon.PlanScope).Matches(plan.ID.String(), plan.Code, plan.Name) {
		return fmt.Sprintf("coupon %s is not applicable to plan %s", coupon.Code, plan.Code)
	}
	return ""
}

func couponDiscount(coupon *db_models.Coupon, base decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch coupon.DiscountType {
	case db_models.DiscountPercent:
		discount = base.Mul(coupon.Value).Div(decimal.NewFromInt(100))
	default:
		discount = coupon.Value
	}
	return utils.ClampDiscount(discount, base)
}

func referralDiscount(rule *db_models.ReferralRule, base decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch rule.DiscountType {
	case db_models.DiscountPercent:
		discount = base.Mul(rule.DiscountValue).Div(decimal.NewFromInt(100))
	default:
		discount = rule.DiscountValue
	}
	if rule.DiscountCap != nil && discount.GreaterThan(*rule.DiscountCap) {
		discount = *rule.DiscountCap
	}
	return utils.ClampDiscount(discount, base)
}

func (o *offerService) ListReferralOffers(ctx context.Context, vendorID uuid.UUID) ([]response_models.ReferralOfferResponse, error) {
	plans, err := o.planRepo.ListActivePlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	nowUnix := o.now().Unix()
	offers := make([]response_models.ReferralOfferResponse, 0, len(plans))
	for i := range plans {
		plan := &plans[i]
		referral, rule, err := o.referralRepo.GetOfferForVendorPlan(ctx, vendorID, plan.ID, nowUnix)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if referral == nil || rule == nil {
			continue
		}
		discount := referralDiscount(rule, plan.Price)
		if !discount.IsPositive() {
			continue
		}
		offers = append(offers, response_models.ReferralOfferResponse{
			PlanID:         plan.ID,
			PlanCode:       plan.Code,
			OfferCode:      referral.OfferCode,
			DiscountAmount: discount,
			NetAmount:      plan.Price.Sub(discount),
		})
	}
	return offers, nil
}

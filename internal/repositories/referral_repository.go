package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendora/internal/models/db_models"
)

type IReferralRepository interface {
	// GetOfferForVendorPlan joins the vendor's referral link with the
	// plan's rule. Both nil when the vendor was not referred or no
	// active rule covers the plan at nowUnix.
	GetOfferForVendorPlan(ctx context.Context, vendorID, planID uuid.UUID, nowUnix int64) (*db_models.Referral, *db_models.ReferralRule, error)
}

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) IReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) GetOfferForVendorPlan(ctx context.Context, vendorID, planID uuid.UUID, nowUnix int64) (*db_models.Referral, *db_models.ReferralRule, error) {
	var referral db_models.Referral
	err := r.db.WithContext(ctx).
		Where("referred_vendor_id = ? AND is_active = TRUE", vendorID).
		First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var rule db_models.ReferralRule
	err = r.db.WithContext(ctx).
		Where("plan_id = ? AND is_active = TRUE", planID).
		Where("(starts_at IS NULL OR starts_at <= ?) AND (ends_at IS NULL OR ends_at > ?)", nowUnix, nowUnix).
		Order("created_at DESC").
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	return &referral, &rule, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendora/internal/models/db_models"
)

type ISettlementRepository interface {
	GetPaymentByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*db_models.Payment, error)
	GetSubscriptionByID(ctx context.Context, id uuid.UUID) (*db_models.Subscription, error)
	GetActiveSubscription(ctx context.Context, vendorID uuid.UUID, nowUnix int64) (*db_models.Subscription, error)

	// CreateSettlement commits the whole activation atomically: prior
	// active subscriptions are replaced, the new subscription and
	// payment rows are inserted, and a coupon usage (when present) is
	// counted against the cap. Returns ErrAlreadySettled on a duplicate
	// gateway payment id and ErrCouponExhausted when the conditional
	// usage increment finds the cap already reached.
	CreateSettlement(ctx context.Context, payment *db_models.Payment, sub *db_models.Subscription, usage *db_models.CouponUsage) error
}

type SettlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) ISettlementRepository {
	return &SettlementRepository{db: db}
}

func (s *SettlementRepository) GetPaymentByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*db_models.Payment, error) {
	var payment db_models.Payment
	err := s.db.WithContext(ctx).
		Where("gateway_payment_id = ?", gatewayPaymentID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (s *SettlementRepository) GetSubscriptionByID(ctx context.Context, id uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s *SettlementRepository) GetActiveSubscription(ctx context.Context, vendorID uuid.UUID, nowUnix int64) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).
		Where("vendor_id = ? AND status = ? AND ends_at > ?", vendorID, db_models.SubStatusActive, nowUnix).
		Order("ends_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s *SettlementRepository) CreateSettlement(ctx context.Context, payment *db_models.Payment, sub *db_models.Subscription, usage *db_models.CouponUsage) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&db_models.Subscription{}).
			Where("vendor_id = ? AND status = ?", sub.VendorID, db_models.SubStatusActive).
			Update("status", db_models.SubStatusReplaced).Error
		if err != nil {
			return err
		}

		if err := tx.Create(sub).Error; err != nil {
			return err
		}

		payment.SubscriptionID = sub.ID
		if err := tx.Create(payment).Error; err != nil {
			if IsUniqueViolation(err) {
				return ErrAlreadySettled
			}
			return err
		}

		if usage != nil {
			res := tx.Model(&db_models.Coupon{}).
				Where("id = ? AND is_active = TRUE AND (max_uses = 0 OR used_count < max_uses)", usage.CouponID).
				Update("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Lost the race to the last usage slot; the caller
				// re-settles at full price.
				return fmt.Errorf("coupon %s: %w", usage.CouponID, ErrCouponExhausted)
			}

			usage.PaymentID = payment.ID
			if err := tx.Create(usage).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"vendora/internal/models/db_models"
)

type ICouponRepository interface {
	// GetByCode is case-insensitive and returns nil when the code does
	// not exist or is inactive.
	GetByCode(ctx context.Context, code string) (*db_models.Coupon, error)
}

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) ICouponRepository {
	return &CouponRepository{db: db}
}

func (c *CouponRepository) GetByCode(ctx context.Context, code string) (*db_models.Coupon, error) {
	var coupon db_models.Coupon
	err := c.db.WithContext(ctx).
		Where("UPPER(code) = ? AND is_active = TRUE", strings.ToUpper(strings.TrimSpace(code))).
		First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

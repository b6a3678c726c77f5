package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendora/internal/models/db_models"
)

type IVendorRepository interface {
	GetVendorByID(ctx context.Context, vendorID uuid.UUID) (*db_models.Vendor, error)
}

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) IVendorRepository {
	return &VendorRepository{db: db}
}

func (v *VendorRepository) GetVendorByID(ctx context.Context, vendorID uuid.UUID) (*db_models.Vendor, error) {
	var vendor db_models.Vendor
	err := v.db.WithContext(ctx).First(&vendor, "id = ?", vendorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vendor, nil
}

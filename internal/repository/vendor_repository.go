package repository

import (
	"context"
	"fmt"

	"github.com/stitchdesk/crm/internal/domain"
	"gorm.io/gorm"
)

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

func (r *VendorRepository) GetByID(ctx context.Context, id int) (*domain.Vendor, error) {
	var vendor domain.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ListByIDs returns the vendors with the given ids, in id order
func (r *VendorRepository) ListByIDs(ctx context.Context, ids []int) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	if len(ids) == 0 {
		return vendors, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/stitchdesk/crm/internal/domain"
	"gorm.io/gorm"
)

// SalesRepRepository handles database operations for sales reps
type SalesRepRepository struct {
	db *gorm.DB
}

// NewSalesRepRepository creates a new SalesRepRepository
func NewSalesRepRepository(db *gorm.DB) *SalesRepRepository {
	return &SalesRepRepository{db: db}
}

func (r *SalesRepRepository) Create(ctx context.Context, rep *domain.SalesRep) error {
	if err := r.db.WithContext(ctx).Create(rep).Error; err != nil {
		return fmt.Errorf("failed to create sales rep: %w", err)
	}
	return nil
}

// GetByUsername retrieves a rep by handle. Pass tx to read inside a transaction.
func (r *SalesRepRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.SalesRep, error) {
	var rep domain.SalesRep
	err := conn(r.db, tx).WithContext(ctx).First(&rep, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"gorm.io/gorm"
)

// PurchaseOrderRepository handles database operations for purchase orders
type PurchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new PurchaseOrderRepository
func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

// Create inserts an order. Callers creating an order together with its jobs
// insert it with a nil PrimaryJobID and set it once the jobs exist.
func (r *PurchaseOrderRepository) Create(ctx context.Context, tx *gorm.DB, po *domain.PurchaseOrder) error {
	if err := conn(r.db, tx).WithContext(ctx).Create(po).Error; err != nil {
		return fmt.Errorf("failed to create purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	if err := conn(r.db, tx).WithContext(ctx).First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

// GetByIDForUpdate reads the order and locks its row until tx ends
func (r *PurchaseOrderRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	if err := forUpdate(tx.WithContext(ctx)).First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

// SetPrimaryJob sets or, with a nil jobID, clears the order's primary job
func (r *PurchaseOrderRepository) SetPrimaryJob(ctx context.Context, tx *gorm.DB, id int, jobID *string, at time.Time) error {
	result := conn(r.db, tx).WithContext(ctx).
		Model(&domain.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"primary_job_id": jobID,
			"updated_at":     at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set primary job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PurchaseOrderRepository) ListByClient(ctx context.Context, clientID string) ([]domain.PurchaseOrder, error) {
	var orders []domain.PurchaseOrder
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"gorm.io/gorm"
)

// JobRepository handles database operations for jobs
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, tx *gorm.DB, job *domain.Job) error {
	if err := conn(r.db, tx).WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*domain.Job, error) {
	var job domain.Job
	if err := conn(r.db, tx).WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) ListByPurchaseOrder(ctx context.Context, tx *gorm.DB, purchaseOrderID int) ([]domain.Job, error) {
	var jobs []domain.Job
	err := conn(r.db, tx).WithContext(ctx).
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("id ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListByPurchaseOrders returns the jobs of several orders in one query
func (r *JobRepository) ListByPurchaseOrders(ctx context.Context, purchaseOrderIDs []int) ([]domain.Job, error) {
	var jobs []domain.Job
	if len(purchaseOrderIDs) == 0 {
		return jobs, nil
	}
	err := r.db.WithContext(ctx).
		Where("purchase_order_id IN ?", purchaseOrderIDs).
		Order("id ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdatePurchaseOrder moves a job to another order
func (r *JobRepository) UpdatePurchaseOrder(ctx context.Context, tx *gorm.DB, id string, purchaseOrderID int, at time.Time) error {
	result := conn(r.db, tx).WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"purchase_order_id": purchaseOrderID,
			"updated_at":        at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to move job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

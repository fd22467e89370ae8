package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"gorm.io/gorm"
)

// AssignmentRepository handles the client / sales rep / company assignment
// history (client_sales_rep_companies)
type AssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, tx *gorm.DB, a *domain.ClientSalesRepCompany) error {
	if err := conn(r.db, tx).WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

// Get returns the history row of one (client, rep) pair
func (r *AssignmentRepository) Get(ctx context.Context, tx *gorm.DB, clientID, salesRepUsername string) (*domain.ClientSalesRepCompany, error) {
	var a domain.ClientSalesRepCompany
	err := conn(r.db, tx).WithContext(ctx).
		Where("client_id = ? AND sales_rep_username = ?", clientID, salesRepUsername).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByClient returns a client's assignment history, newest first
func (r *AssignmentRepository) ListByClient(ctx context.Context, clientID string) ([]domain.ClientSalesRepCompany, error) {
	var rows []domain.ClientSalesRepCompany
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("from_date DESC").
		Order("sales_rep_username ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActiveByClient returns the rows flagged active for a client. Inside a
// transaction the rows stay locked until it ends.
func (r *AssignmentRepository) ListActiveByClient(ctx context.Context, tx *gorm.DB, clientID string) ([]domain.ClientSalesRepCompany, error) {
	query := r.db.WithContext(ctx)
	if tx != nil {
		query = forUpdate(tx.WithContext(ctx))
	}
	var rows []domain.ClientSalesRepCompany
	err := query.
		Where("client_id = ? AND is_active = ?", clientID, true).
		Order("from_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBySalesRep returns every period a rep served any client, newest first
func (r *AssignmentRepository) ListBySalesRep(ctx context.Context, salesRepUsername string) ([]domain.ClientSalesRepCompany, error) {
	var rows []domain.ClientSalesRepCompany
	err := r.db.WithContext(ctx).
		Where("sales_rep_username = ?", salesRepUsername).
		Order("from_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Close ends an assignment period at the given time
func (r *AssignmentRepository) Close(ctx context.Context, tx *gorm.DB, clientID, salesRepUsername string, at time.Time) error {
	result := conn(r.db, tx).WithContext(ctx).
		Model(&domain.ClientSalesRepCompany{}).
		Where("client_id = ? AND sales_rep_username = ?", clientID, salesRepUsername).
		Updates(map[string]interface{}{
			"to_date":   at,
			"is_active": false,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to close assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Reopen starts a new period on an existing (client, rep) row. The row's
// earlier interval is overwritten since the pair is its identity.
func (r *AssignmentRepository) Reopen(ctx context.Context, tx *gorm.DB, clientID, salesRepUsername string, companyID int, from time.Time) error {
	result := conn(r.db, tx).WithContext(ctx).
		Model(&domain.ClientSalesRepCompany{}).
		Where("client_id = ? AND sales_rep_username = ?", clientID, salesRepUsername).
		Updates(map[string]interface{}{
			"company_id": companyID,
			"from_date":  from,
			"to_date":    nil,
			"is_active":  true,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to reopen assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

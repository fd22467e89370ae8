package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"gorm.io/gorm"
)

// ClientRepository handles database operations for clients
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, tx *gorm.DB, client *domain.Client) error {
	if err := conn(r.db, tx).WithContext(ctx).Create(client).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	var client domain.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByIDForUpdate reads the client and locks its row until tx ends
func (r *ClientRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*domain.Client, error) {
	var client domain.Client
	err := forUpdate(tx.WithContext(ctx)).First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateAssignment points the client at its current sales rep and company
func (r *ClientRepository) UpdateAssignment(ctx context.Context, tx *gorm.DB, id, salesRepUsername string, companyID int, at time.Time) error {
	result := conn(r.db, tx).WithContext(ctx).
		Model(&domain.Client{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sales_rep_username": salesRepUsername,
			"company_id":         companyID,
			"updated_at":         at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update client assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBySalesRep returns the clients a rep currently serves
func (r *ClientRepository) ListBySalesRep(ctx context.Context, username string) ([]domain.Client, error) {
	var clients []domain.Client
	err := r.db.WithContext(ctx).
		Where("sales_rep_username = ?", username).
		Order("name ASC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

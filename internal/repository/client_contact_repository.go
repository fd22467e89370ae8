package repository

import (
	"context"
	"fmt"

	"github.com/stitchdesk/crm/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClientContactRepository handles a client's address, emails and phones
type ClientContactRepository struct {
	db *gorm.DB
}

// NewClientContactRepository creates a new ClientContactRepository
func NewClientContactRepository(db *gorm.DB) *ClientContactRepository {
	return &ClientContactRepository{db: db}
}

// UpsertAddress creates or replaces the client's single address
func (r *ClientContactRepository) UpsertAddress(ctx context.Context, tx *gorm.DB, address *domain.ClientAddress) error {
	err := conn(r.db, tx).WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(address).Error
	if err != nil {
		return fmt.Errorf("failed to save client address: %w", err)
	}
	return nil
}

func (r *ClientContactRepository) GetAddress(ctx context.Context, clientID string) (*domain.ClientAddress, error) {
	var address domain.ClientAddress
	if err := r.db.WithContext(ctx).First(&address, "client_id = ?", clientID).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *ClientContactRepository) CreateEmail(ctx context.Context, tx *gorm.DB, email *domain.ClientEmail) error {
	if err := conn(r.db, tx).WithContext(ctx).Create(email).Error; err != nil {
		return fmt.Errorf("failed to create client email: %w", err)
	}
	return nil
}

func (r *ClientContactRepository) ListEmails(ctx context.Context, clientID string) ([]domain.ClientEmail, error) {
	var emails []domain.ClientEmail
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

// DeleteEmail removes one of the client's emails
func (r *ClientContactRepository) DeleteEmail(ctx context.Context, clientID string, id int) error {
	result := r.db.WithContext(ctx).Delete(&domain.ClientEmail{}, "id = ? AND client_id = ?", id, clientID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client email: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ClientContactRepository) CreatePhone(ctx context.Context, tx *gorm.DB, phone *domain.ClientPhone) error {
	if err := conn(r.db, tx).WithContext(ctx).Create(phone).Error; err != nil {
		return fmt.Errorf("failed to create client phone: %w", err)
	}
	return nil
}

func (r *ClientContactRepository) ListPhones(ctx context.Context, clientID string) ([]domain.ClientPhone, error) {
	var phones []domain.ClientPhone
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&phones).Error
	if err != nil {
		return nil, err
	}
	return phones, nil
}

// DeletePhone removes one of the client's phones
func (r *ClientContactRepository) DeletePhone(ctx context.Context, clientID string, id int) error {
	result := r.db.WithContext(ctx).Delete(&domain.ClientPhone{}, "id = ? AND client_id = ?", id, clientID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client phone: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

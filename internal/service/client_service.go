package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"github.com/stitchdesk/crm/internal/logger"
	"github.com/stitchdesk/crm/internal/repository"
	"github.com/stitchdesk/crm/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClientService struct {
	clientRepo     *repository.ClientRepository
	assignmentRepo *repository.AssignmentRepository
	salesRepRepo   *repository.SalesRepRepository
	contactRepo    *repository.ClientContactRepository
	graphLoader    *repository.GraphLoader
	logger         *zap.Logger
	db             *gorm.DB
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	assignmentRepo *repository.AssignmentRepository,
	salesRepRepo *repository.SalesRepRepository,
	contactRepo *repository.ClientContactRepository,
	graphLoader *repository.GraphLoader,
	logger *zap.Logger,
	db *gorm.DB,
) *ClientService {
	return &ClientService{
		clientRepo:     clientRepo,
		assignmentRepo: assignmentRepo,
		salesRepRepo:   salesRepRepo,
		contactRepo:    contactRepo,
		graphLoader:    graphLoader,
		logger:         logger,
		db:             db,
	}
}

// Create inserts a client and opens its first assignment in one transaction
func (s *ClientService) Create(ctx context.Context, input domain.ClientOptionalDefaults) (*domain.Client, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if _, err := s.salesRepRepo.GetByUsername(ctx, nil, input.SalesRepUsername); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalesRepNotFound
		}
		return nil, fmt.Errorf("failed to get sales rep: %w", err)
	}

	now := time.Now().UTC()
	client := input.WithDefaults(now)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.clientRepo.Create(ctx, tx, &client); err != nil {
			return err
		}
		return s.assignmentRepo.Create(ctx, tx, &domain.ClientSalesRepCompany{
			ClientID:         client.ID,
			SalesRepUsername: client.SalesRepUsername,
			CompanyID:        client.CompanyID,
			FromDate:         client.CreatedAt,
			IsActive:         true,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("client created",
		zap.String("client_id", client.ID),
		zap.String("sales_rep", client.SalesRepUsername))

	return &client, nil
}

// GetWithRelations returns a client with its relations resolved depth levels deep
func (s *ClientService) GetWithRelations(ctx context.Context, clientID string, depth int) (*domain.ClientWithRelations, error) {
	g, err := s.graphLoader.LoadClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return g.Client(clientID, depth), nil
}

// SetAddress creates or replaces the client's mailing address
func (s *ClientService) SetAddress(ctx context.Context, input domain.ClientAddressOptionalDefaults) (*domain.ClientAddress, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.ensureClient(ctx, input.ClientID); err != nil {
		return nil, err
	}

	address := input.WithDefaults(time.Now())
	if err := s.contactRepo.UpsertAddress(ctx, nil, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *ClientService) AddEmail(ctx context.Context, input domain.ClientEmailOptionalDefaults) (*domain.ClientEmail, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.ensureClient(ctx, input.ClientID); err != nil {
		return nil, err
	}

	email := input.WithDefaults(time.Now())
	if err := s.contactRepo.CreateEmail(ctx, nil, &email); err != nil {
		return nil, err
	}
	return &email, nil
}

func (s *ClientService) AddPhone(ctx context.Context, input domain.ClientPhoneOptionalDefaults) (*domain.ClientPhone, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.ensureClient(ctx, input.ClientID); err != nil {
		return nil, err
	}

	phone := input.WithDefaults(time.Now())
	if err := s.contactRepo.CreatePhone(ctx, nil, &phone); err != nil {
		return nil, err
	}
	return &phone, nil
}

// RemoveEmail deletes one of the client's email addresses
func (s *ClientService) RemoveEmail(ctx context.Context, clientID string, emailID int) error {
	if err := s.contactRepo.DeleteEmail(ctx, clientID, emailID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	logger.WithClient(s.logger, clientID).Info("client email removed", zap.Int("email_id", emailID))
	return nil
}

// RemovePhone deletes one of the client's phone numbers
func (s *ClientService) RemovePhone(ctx context.Context, clientID string, phoneID int) error {
	if err := s.contactRepo.DeletePhone(ctx, clientID, phoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	logger.WithClient(s.logger, clientID).Info("client phone removed", zap.Int("phone_id", phoneID))
	return nil
}

func (s *ClientService) ensureClient(ctx context.Context, clientID string) error {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to get client: %w", err)
	}
	return nil
}

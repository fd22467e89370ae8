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

// ReassignInput moves a client to another sales rep under a company
type ReassignInput struct {
	ClientID         string `json:"clientId" validate:"required,max=36"`
	SalesRepUsername string `json:"salesRepUsername" validate:"required,min=2,max=20,username"`
	CompanyID        int    `json:"companyId" validate:"company"`
}

// AssignmentService maintains the client / sales rep / company history so
// that a client has exactly one active assignment, and that assignment
// agrees with the client's own salesRepUsername and companyId.
type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	clientRepo     *repository.ClientRepository
	salesRepRepo   *repository.SalesRepRepository
	logger         *zap.Logger
	db             *gorm.DB
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	clientRepo *repository.ClientRepository,
	salesRepRepo *repository.SalesRepRepository,
	logger *zap.Logger,
	db *gorm.DB,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		clientRepo:     clientRepo,
		salesRepRepo:   salesRepRepo,
		logger:         logger,
		db:             db,
	}
}

// Reassign closes the client's active assignment and opens one for the new
// rep. A rep who served the client before gets the old row reopened.
// Reassigning to the current rep and company changes nothing.
func (s *AssignmentService) Reassign(ctx context.Context, input ReassignInput) (*domain.ClientSalesRepCompany, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var current *domain.ClientSalesRepCompany
	changed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.clientRepo.GetByIDForUpdate(ctx, tx, input.ClientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return fmt.Errorf("failed to lock client: %w", err)
		}

		if _, err := s.salesRepRepo.GetByUsername(ctx, tx, input.SalesRepUsername); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSalesRepNotFound
			}
			return fmt.Errorf("failed to get sales rep: %w", err)
		}

		active, err := s.assignmentRepo.ListActiveByClient(ctx, tx, client.ID)
		if err != nil {
			return fmt.Errorf("failed to lock active assignments: %w", err)
		}

		if isCurrentAssignment(client, active, input) {
			current = &active[0]
			return nil
		}

		now := time.Now().UTC()
		for _, a := range active {
			if err := s.assignmentRepo.Close(ctx, tx, a.ClientID, a.SalesRepUsername, now); err != nil {
				return err
			}
		}

		previous, err := s.assignmentRepo.Get(ctx, tx, client.ID, input.SalesRepUsername)
		switch {
		case err == nil:
			// the (client, rep) row is reused, so its earlier period is replaced
			logger.WithClient(s.logger, client.ID).Info("reopening previous assignment",
				zap.String("sales_rep", previous.SalesRepUsername),
				zap.Int("previous_company_id", previous.CompanyID),
				zap.Time("previous_from", previous.FromDate),
				zap.Timep("previous_to", previous.ToDate))
			err = s.assignmentRepo.Reopen(ctx, tx, client.ID, input.SalesRepUsername, input.CompanyID, now)
		case errors.Is(err, gorm.ErrRecordNotFound):
			err = s.assignmentRepo.Create(ctx, tx, &domain.ClientSalesRepCompany{
				ClientID:         client.ID,
				SalesRepUsername: input.SalesRepUsername,
				CompanyID:        input.CompanyID,
				FromDate:         now,
				IsActive:         true,
			})
		}
		if err != nil {
			return err
		}

		if err := s.clientRepo.UpdateAssignment(ctx, tx, client.ID, input.SalesRepUsername, input.CompanyID, now); err != nil {
			return err
		}
		client.SalesRepUsername = input.SalesRepUsername
		client.CompanyID = input.CompanyID

		// Re-read and verify before commit
		rows, err := s.assignmentRepo.ListActiveByClient(ctx, tx, client.ID)
		if err != nil {
			return fmt.Errorf("failed to reload active assignments: %w", err)
		}
		if violations := domain.CheckClientAssignments(*client, rows); len(violations) > 0 {
			return errors.Join(violations...)
		}
		current = &rows[0]
		changed = true
		return nil
	})
	log := logger.WithClient(s.logger, input.ClientID)
	if err != nil {
		log.Error("failed to reassign client",
			zap.String("sales_rep", input.SalesRepUsername),
			zap.Error(err))
		return nil, err
	}

	if changed {
		log.Info("client reassigned",
			zap.String("sales_rep", input.SalesRepUsername),
			zap.Int("company_id", input.CompanyID))
	}

	return current, nil
}

func isCurrentAssignment(client *domain.Client, active []domain.ClientSalesRepCompany, input ReassignInput) bool {
	if len(active) != 1 || !active[0].IsCurrent() {
		return false
	}
	a := active[0]
	return a.SalesRepUsername == input.SalesRepUsername &&
		a.CompanyID == input.CompanyID &&
		client.SalesRepUsername == input.SalesRepUsername &&
		client.CompanyID == input.CompanyID
}

// CurrentAssignment returns the client's single active assignment
func (s *AssignmentService) CurrentAssignment(ctx context.Context, clientID string) (*domain.ClientSalesRepCompany, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	rows, err := s.assignmentRepo.ListActiveByClient(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active assignments: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoActiveAssignment
	}
	if violations := domain.CheckClientAssignments(*client, rows); len(violations) > 0 {
		return nil, errors.Join(violations...)
	}
	return &rows[0], nil
}

// History returns every assignment period of a client, newest first
func (s *AssignmentService) History(ctx context.Context, clientID string) ([]domain.ClientSalesRepCompany, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return s.assignmentRepo.ListByClient(ctx, clientID)
}

// ClientsServedBy returns every assignment period a rep has held
func (s *AssignmentService) ClientsServedBy(ctx context.Context, salesRepUsername string) ([]domain.ClientSalesRepCompany, error) {
	if _, err := s.salesRepRepo.GetByUsername(ctx, nil, salesRepUsername); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalesRepNotFound
		}
		return nil, fmt.Errorf("failed to get sales rep: %w", err)
	}
	return s.assignmentRepo.ListBySalesRep(ctx, salesRepUsername)
}

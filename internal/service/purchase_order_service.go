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

// CreatePurchaseOrderInput is a new purchase order submitted together with
// its jobs. PrimaryJobIndex, when set, marks which of Jobs becomes the
// order's primary job. A PurchaseOrderID on a submitted job is ignored.
type CreatePurchaseOrderInput struct {
	ClientID        string                       `json:"clientId" validate:"required,max=36"`
	PONumber        *string                      `json:"poNumber" validate:"omitempty,max=50"`
	Notes           *string                      `json:"notes" validate:"omitempty,max=5000"`
	Jobs            []domain.JobOptionalDefaults `json:"jobs" validate:"dive"`
	PrimaryJobIndex *int                         `json:"primaryJobIndex" validate:"omitempty,gte=0"`
}

// PurchaseOrderResult is an order with the jobs written alongside it
type PurchaseOrderResult struct {
	PurchaseOrder domain.PurchaseOrder
	Jobs          []domain.Job
}

// PurchaseOrderService keeps a purchase order and its primary job
// consistent: the primary job is always one of the order's own jobs.
type PurchaseOrderService struct {
	orderRepo  *repository.PurchaseOrderRepository
	jobRepo    *repository.JobRepository
	clientRepo *repository.ClientRepository
	vendorRepo *repository.VendorRepository
	logger     *zap.Logger
	db         *gorm.DB
}

func NewPurchaseOrderService(
	orderRepo *repository.PurchaseOrderRepository,
	jobRepo *repository.JobRepository,
	clientRepo *repository.ClientRepository,
	vendorRepo *repository.VendorRepository,
	logger *zap.Logger,
	db *gorm.DB,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:  orderRepo,
		jobRepo:    jobRepo,
		clientRepo: clientRepo,
		vendorRepo: vendorRepo,
		logger:     logger,
		db:         db,
	}
}

// CreateWithJobs writes the order and its jobs in one transaction. The order
// is inserted first without a primary job, then the jobs pointing at it,
// then the primary job is set and the pair is re-checked.
func (s *PurchaseOrderService) CreateWithJobs(ctx context.Context, input CreatePurchaseOrderInput) (*PurchaseOrderResult, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := checkPrices("jobs", input.Jobs); err != nil {
		return nil, err
	}
	if input.PrimaryJobIndex != nil && *input.PrimaryJobIndex >= len(input.Jobs) {
		return nil, ErrPrimaryJobIndex
	}

	if _, err := s.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if err := s.checkVendors(ctx, input.Jobs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := domain.PurchaseOrderOptionalDefaults{
		ClientID: input.ClientID,
		PONumber: input.PONumber,
		Notes:    input.Notes,
	}.WithDefaults(now)

	result := &PurchaseOrderResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Phase 1: the order, with no primary job yet
		if err := s.orderRepo.Create(ctx, tx, &order); err != nil {
			return err
		}

		// Phase 2: the jobs, each pointing at the new order
		jobs := make([]domain.Job, 0, len(input.Jobs))
		for _, in := range input.Jobs {
			job := in.WithDefaults(now)
			job.PurchaseOrderID = order.ID
			if err := s.jobRepo.Create(ctx, tx, &job); err != nil {
				return err
			}
			jobs = append(jobs, job)
		}

		// Phase 3: close the cycle
		if input.PrimaryJobIndex != nil {
			primary := jobs[*input.PrimaryJobIndex]
			if err := s.orderRepo.SetPrimaryJob(ctx, tx, order.ID, &primary.ID, now); err != nil {
				return err
			}
			order.PrimaryJobID = &primary.ID
			if err := s.verifyPrimaryJob(ctx, tx, order.ID); err != nil {
				return err
			}
		}

		result.PurchaseOrder = order
		result.Jobs = jobs
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create purchase order",
			zap.String("client_id", input.ClientID),
			zap.Int("jobs", len(input.Jobs)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.Int("purchase_order_id", order.ID),
		zap.String("client_id", order.ClientID),
		zap.Int("jobs", len(result.Jobs)))

	return result, nil
}

// SetPrimaryJob makes jobID the order's primary job. The job must already
// belong to the order.
func (s *PurchaseOrderService) SetPrimaryJob(ctx context.Context, purchaseOrderID int, jobID string) (*domain.PurchaseOrder, error) {
	var updated *domain.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.lockOrder(ctx, tx, purchaseOrderID); err != nil {
			return err
		}

		job, err := s.jobRepo.GetByID(ctx, tx, jobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return fmt.Errorf("failed to get job: %w", err)
		}
		if job.PurchaseOrderID != purchaseOrderID {
			return ErrPrimaryJobNotInOrder
		}

		if err := s.orderRepo.SetPrimaryJob(ctx, tx, purchaseOrderID, &job.ID, time.Now().UTC()); err != nil {
			return err
		}
		if err := s.verifyPrimaryJob(ctx, tx, purchaseOrderID); err != nil {
			return err
		}

		updated, err = s.orderRepo.GetByID(ctx, tx, purchaseOrderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.WithPurchaseOrder(s.logger, purchaseOrderID).Info("primary job set",
		zap.String("job_id", jobID))

	return updated, nil
}

// ClearPrimaryJob removes the order's primary job marker
func (s *PurchaseOrderService) ClearPrimaryJob(ctx context.Context, purchaseOrderID int) (*domain.PurchaseOrder, error) {
	var updated *domain.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.lockOrder(ctx, tx, purchaseOrderID); err != nil {
			return err
		}
		if err := s.orderRepo.SetPrimaryJob(ctx, tx, purchaseOrderID, nil, time.Now().UTC()); err != nil {
			return err
		}
		var err error
		updated, err = s.orderRepo.GetByID(ctx, tx, purchaseOrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AddJob creates a job under an existing order
func (s *PurchaseOrderService) AddJob(ctx context.Context, purchaseOrderID int, input domain.JobOptionalDefaults) (*domain.Job, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := checkPrices("", []domain.JobOptionalDefaults{input}); err != nil {
		return nil, err
	}
	if err := s.checkVendors(ctx, []domain.JobOptionalDefaults{input}); err != nil {
		return nil, err
	}

	job := input.WithDefaults(time.Now().UTC())
	job.PurchaseOrderID = purchaseOrderID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.lockOrder(ctx, tx, purchaseOrderID); err != nil {
			return err
		}
		return s.jobRepo.Create(ctx, tx, &job)
	})
	if err != nil {
		return nil, err
	}

	logger.WithPurchaseOrder(s.logger, purchaseOrderID).Info("job added",
		zap.String("job_id", job.ID))

	return &job, nil
}

// MoveJob re-parents a job to another order. The primary job of the source
// order cannot be moved until the marker is cleared.
func (s *PurchaseOrderService) MoveJob(ctx context.Context, jobID string, toPurchaseOrderID int) (*domain.Job, error) {
	var moved *domain.Job
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.GetByID(ctx, tx, jobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return fmt.Errorf("failed to get job: %w", err)
		}
		if job.PurchaseOrderID == toPurchaseOrderID {
			moved = job
			return nil
		}

		// Lock both orders in id order
		first, second := job.PurchaseOrderID, toPurchaseOrderID
		if second < first {
			first, second = second, first
		}
		locked := make(map[int]*domain.PurchaseOrder, 2)
		for _, id := range []int{first, second} {
			po, err := s.lockOrder(ctx, tx, id)
			if err != nil {
				return err
			}
			locked[id] = po
		}

		source := locked[job.PurchaseOrderID]
		if source.PrimaryJobID != nil && *source.PrimaryJobID == job.ID {
			return ErrPrimaryJobMove
		}

		now := time.Now().UTC()
		if err := s.jobRepo.UpdatePurchaseOrder(ctx, tx, job.ID, toPurchaseOrderID, now); err != nil {
			return err
		}
		job.PurchaseOrderID = toPurchaseOrderID
		job.UpdatedAt = now
		moved = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("job moved",
		zap.String("job_id", jobID),
		zap.Int("purchase_order_id", toPurchaseOrderID))

	return moved, nil
}

// SetJobStatus moves a job to another workflow status
func (s *PurchaseOrderService) SetJobStatus(ctx context.Context, jobID string, status domain.JobStatus) (*domain.Job, error) {
	if !status.IsValid() {
		fe := validation.FieldError{
			Field:   "status",
			Tag:     "jobstatus",
			Message: domain.GetValidationMessage("status", "jobstatus"),
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, validation.Errors{fe})
	}

	if err := s.jobRepo.UpdateStatus(ctx, jobID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	job, err := s.jobRepo.GetByID(ctx, nil, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload job: %w", err)
	}

	s.logger.Info("job status changed",
		zap.String("job_id", jobID),
		zap.String("status", string(status)))
	return job, nil
}

// GetWithJobs returns an order and its jobs
func (s *PurchaseOrderService) GetWithJobs(ctx context.Context, purchaseOrderID int) (*PurchaseOrderResult, error) {
	po, err := s.orderRepo.GetByID(ctx, nil, purchaseOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseOrderNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	jobs, err := s.jobRepo.ListByPurchaseOrder(ctx, nil, purchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return &PurchaseOrderResult{PurchaseOrder: *po, Jobs: jobs}, nil
}

func (s *PurchaseOrderService) lockOrder(ctx context.Context, tx *gorm.DB, id int) (*domain.PurchaseOrder, error) {
	po, err := s.orderRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseOrderNotFound
		}
		return nil, fmt.Errorf("failed to lock purchase order: %w", err)
	}
	return po, nil
}

// verifyPrimaryJob re-reads the order and its primary job inside tx and
// returns an integrity error when they disagree
func (s *PurchaseOrderService) verifyPrimaryJob(ctx context.Context, tx *gorm.DB, purchaseOrderID int) error {
	po, err := s.orderRepo.GetByID(ctx, tx, purchaseOrderID)
	if err != nil {
		return fmt.Errorf("failed to reload purchase order: %w", err)
	}
	if po.PrimaryJobID == nil {
		return nil
	}

	var primary *domain.Job
	job, err := s.jobRepo.GetByID(ctx, tx, *po.PrimaryJobID)
	switch {
	case err == nil:
		primary = job
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to reload primary job: %w", err)
	}
	return domain.CheckPurchaseOrder(*po, primary)
}

func (s *PurchaseOrderService) checkVendors(ctx context.Context, jobs []domain.JobOptionalDefaults) error {
	seen := make(map[int]bool, len(jobs))
	for _, j := range jobs {
		if seen[j.VendorID] {
			continue
		}
		seen[j.VendorID] = true
		if _, err := s.vendorRepo.GetByID(ctx, j.VendorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrVendorNotFound, j.VendorID)
			}
			return fmt.Errorf("failed to get vendor: %w", err)
		}
	}
	return nil
}

// checkPrices reports every job price that cannot be stored. prefix is the
// json path of the job list, or empty for a single job.
func checkPrices(prefix string, jobs []domain.JobOptionalDefaults) error {
	var ve validation.Errors
	for i, j := range jobs {
		field := "price"
		if prefix != "" {
			field = fmt.Sprintf("%s[%d].price", prefix, i)
		}
		if fe := validation.ValidateFiniteDecimal(field, j.Price); fe != nil {
			ve = append(ve, *fe)
		}
	}
	if len(ve) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ve)
	}
	return nil
}

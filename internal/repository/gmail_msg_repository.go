package repository

import (
	"context"
	"fmt"

	"github.com/stitchdesk/crm/internal/domain"
	"gorm.io/gorm"
)

// GmailMsgRepository stores the links between mailbox messages and jobs
type GmailMsgRepository struct {
	db *gorm.DB
}

func NewGmailMsgRepository(db *gorm.DB) *GmailMsgRepository {
	return &GmailMsgRepository{db: db}
}

func (r *GmailMsgRepository) Create(ctx context.Context, msg *domain.GmailMsg) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create gmail message link: %w", err)
	}
	return nil
}

func (r *GmailMsgRepository) ListByJobs(ctx context.Context, jobIDs []string) ([]domain.GmailMsg, error) {
	var msgs []domain.GmailMsg
	if len(jobIDs) == 0 {
		return msgs, nil
	}
	if err := r.db.WithContext(ctx).Where("job_id IN ?", jobIDs).Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/stitchdesk/crm/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository handles per-user color and preference settings
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) UpsertColorSettings(ctx context.Context, settings *domain.ColorSettings) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(settings).Error
	if err != nil {
		return fmt.Errorf("failed to save color settings: %w", err)
	}
	return nil
}

func (r *SettingsRepository) GetColorSettings(ctx context.Context, username string) (*domain.ColorSettings, error) {
	var settings domain.ColorSettings
	if err := r.db.WithContext(ctx).First(&settings, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) UpsertUserSettings(ctx context.Context, settings *domain.UserSettings) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(settings).Error
	if err != nil {
		return fmt.Errorf("failed to save user settings: %w", err)
	}
	return nil
}

func (r *SettingsRepository) GetUserSettings(ctx context.Context, username string) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	if err := r.db.WithContext(ctx).First(&settings, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

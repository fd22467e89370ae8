package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"github.com/stitchdesk/crm/internal/repository"
	"github.com/stitchdesk/crm/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsService saves UI colors and opaque user preference documents.
// Both are replaced whole on every save.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	userRepo     *repository.UserRepository
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo *repository.SettingsRepository, userRepo *repository.UserRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// SaveColorSettings validates the palette and stores it under its username
func (s *SettingsService) SaveColorSettings(ctx context.Context, input domain.ColorSettingsOptionalDefaults) (*domain.ColorSettings, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	settings := input.WithDefaults(time.Now())
	if err := s.settingsRepo.UpsertColorSettings(ctx, &settings); err != nil {
		return nil, err
	}

	s.logger.Info("color settings saved",
		zap.String("username", settings.Username),
		zap.String("theme", string(settings.Theme)))
	return &settings, nil
}

// ColorSettings returns the saved palette for username
func (s *SettingsService) ColorSettings(ctx context.Context, username string) (*domain.ColorSettings, error) {
	settings, err := s.settingsRepo.GetColorSettings(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get color settings: %w", err)
	}
	return settings, nil
}

// SaveUserSettings stores a user's preference document. The document is
// only checked for size and JSON syntax.
func (s *SettingsService) SaveUserSettings(ctx context.Context, input domain.UserSettingsOptionalDefaults) (*domain.UserSettings, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if _, err := s.userRepo.GetByUsername(ctx, input.Username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	settings := input.WithDefaults(time.Now())
	if err := s.settingsRepo.UpsertUserSettings(ctx, &settings); err != nil {
		return nil, err
	}

	s.logger.Info("user settings saved", zap.String("username", settings.Username))
	return &settings, nil
}

// UserSettings returns a user's preference document, or the empty document
// when the user has never saved one
func (s *SettingsService) UserSettings(ctx context.Context, username string) (*domain.UserSettings, error) {
	settings, err := s.settingsRepo.GetUserSettings(ctx, username)
	switch {
	case err == nil:
		return settings, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &domain.UserSettings{Username: username, Settings: domain.DefaultUserSettings}, nil
}

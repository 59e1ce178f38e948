// Package persistence contains repository implementations using GORM.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// SettingsRepository implements the adapter.SettingsRepository interface.
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new SettingsRepository instance.
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// FindOrCreate returns the user's settings, creating a default row on first access.
func (r *SettingsRepository) FindOrCreate(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	var settingsModel model.UserSettingsModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settingsModel).Error
	if err == nil {
		return settingsModel.ToEntity(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}

	defaults := entity.NewUserSettings(userID)
	settingsModel.FromEntity(defaults)
	if err := r.db.WithContext(ctx).Create(&settingsModel).Error; err != nil {
		// A concurrent first access may have created the row already.
		if isUniqueViolation(err) {
			if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settingsModel).Error; err != nil {
				return nil, fmt.Errorf("failed to find settings: %w", err)
			}
			return settingsModel.ToEntity(), nil
		}
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}
	return defaults, nil
}

// Update stores the user's settings.
func (r *SettingsRepository) Update(ctx context.Context, settings *entity.UserSettings) error {
	var settingsModel model.UserSettingsModel
	settingsModel.FromEntity(settings)

	if err := r.db.WithContext(ctx).Save(&settingsModel).Error; err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

// Package settings contains user settings use cases.
package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// UpdateSettingsInput represents the input for updating user settings.
type UpdateSettingsInput struct {
	UserID   uuid.UUID
	Currency string
}

// UpdateSettingsOutput represents the output of updating user settings.
type UpdateSettingsOutput struct {
	Settings *entity.UserSettings
}

// UpdateSettingsUseCase updates a user's settings.
type UpdateSettingsUseCase struct {
	settingsRepo adapter.SettingsRepository
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(settingsRepo adapter.SettingsRepository) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{
		settingsRepo: settingsRepo,
	}
}

// Execute performs the settings update.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if !isValidCurrency(input.Currency) {
		return nil, domainerror.NewSettingsError(
			domainerror.ErrCodeInvalidCurrency,
			"currency must be a three-letter uppercase code",
			domainerror.ErrInvalidCurrency,
		)
	}

	settings, err := uc.settingsRepo.FindOrCreate(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings.Currency = input.Currency
	settings.UpdatedAt = time.Now().UTC()

	if err := uc.settingsRepo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return &UpdateSettingsOutput{Settings: settings}, nil
}

// isValidCurrency accepts three-letter uppercase ISO 4217 style codes.
func isValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

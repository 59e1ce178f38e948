// Package adapter defines interfaces for external dependencies (repositories, services).
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// SettingsRepository persists per-user settings.
type SettingsRepository interface {
	// FindOrCreate returns the user's settings, creating a default row on first access.
	FindOrCreate(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error)

	// Update stores the user's settings.
	Update(ctx context.Context, settings *entity.UserSettings) error
}

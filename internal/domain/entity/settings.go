// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is assigned when a user has no stored settings yet.
const DefaultCurrency = "USD"

// UserSettings holds per-user display preferences.
type UserSettings struct {
	UserID    uuid.UUID
	Currency  string
	UpdatedAt time.Time
}

// NewUserSettings creates settings with defaults for a user.
func NewUserSettings(userID uuid.UUID) *UserSettings {
	return &UserSettings{
		UserID:    userID,
		Currency:  DefaultCurrency,
		UpdatedAt: time.Now().UTC(),
	}
}

// Package model contains the database models for persistence.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// UserSettingsModel represents the user_settings table.
type UserSettingsModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Currency  string    `gorm:"type:varchar(3);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserSettingsModel.
func (UserSettingsModel) TableName() string {
	return "user_settings"
}

// ToEntity converts the model to a domain entity.
func (m *UserSettingsModel) ToEntity() *entity.UserSettings {
	return &entity.UserSettings{
		UserID:    m.UserID,
		Currency:  m.Currency,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromEntity populates the model from a domain entity.
func (m *UserSettingsModel) FromEntity(s *entity.UserSettings) {
	m.UserID = s.UserID
	m.Currency = s.Currency
	m.UpdatedAt = s.UpdatedAt
}

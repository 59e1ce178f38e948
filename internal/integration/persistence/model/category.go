// Package model contains the database models for persistence.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CategoryModel represents the categories table.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_user_name"`
	Icon      string    `gorm:"type:varchar(50);not null"`
	Type      string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts the model to a domain entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Icon:      m.Icon,
		Type:      entity.TransactionType(m.Type),
		CreatedAt: m.CreatedAt,
	}
}

// FromEntity populates the model from a domain entity.
func (m *CategoryModel) FromEntity(c *entity.Category) {
	m.ID = c.ID
	m.UserID = c.UserID
	m.Name = c.Name
	m.Icon = c.Icon
	m.Type = string(c.Type)
	m.CreatedAt = c.CreatedAt
}

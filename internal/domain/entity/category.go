// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryIcon is the icon assigned when none is provided.
const DefaultCategoryIcon = "tag"

// Category represents a user-scoped transaction category. Names are unique per
// user; transactions store a snapshot of the name and icon rather than a live
// reference.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Icon      string
	Type      TransactionType
	CreatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name, icon string, categoryType TransactionType) *Category {
	if icon == "" {
		icon = DefaultCategoryIcon
	}
	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Icon:      icon,
		Type:      categoryType,
		CreatedAt: time.Now().UTC(),
	}
}

// Package adapter defines interfaces for external dependencies (repositories, services).
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CategoryRepository persists user-scoped categories.
type CategoryRepository interface {
	// Create inserts a category. Returns ErrCategoryNameExists when the
	// (user, name) pair is already taken.
	Create(ctx context.Context, category *entity.Category) error

	// FindByUser lists a user's categories, optionally filtered by type.
	FindByUser(ctx context.Context, userID uuid.UUID, transactionType *entity.TransactionType) ([]*entity.Category, error)

	// FindByName retrieves a user's category by name. Returns
	// ErrCategoryNotFound when absent.
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error)

	// Delete removes a user's category by name. Historical transactions keep
	// their snapshot. Returns ErrCategoryNotFound when absent.
	Delete(ctx context.Context, userID uuid.UUID, name string) error
}

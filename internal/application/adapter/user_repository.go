// Package adapter defines interfaces for external dependencies (repositories, services).
package adapter

import (
	"context"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail checks whether a user with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Package adapter defines interfaces for external dependencies (repositories, services).
package adapter

import (
	"context"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CategorySuggester picks the best matching category for a transaction
// description from the user's existing categories.
type CategorySuggester interface {
	// IsAvailable reports whether the suggester is configured.
	IsAvailable() bool

	// Suggest returns the name of the best matching candidate, or an empty
	// string when none fits.
	Suggest(ctx context.Context, description string, candidates []*entity.Category) (string, error)
}

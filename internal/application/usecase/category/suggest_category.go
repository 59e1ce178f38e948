// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	UserID      uuid.UUID
	Description string
	Type        entity.TransactionType
}

// SuggestCategoryOutput represents the output of a category suggestion.
// Category is nil when no candidate matched.
type SuggestCategoryOutput struct {
	Category *entity.Category
}

// SuggestCategoryUseCase asks the suggestion service to pick the best matching
// category for a transaction description from the user's existing categories.
type SuggestCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	suggester    adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	suggester adapter.CategorySuggester,
) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		categoryRepo: categoryRepo,
		suggester:    suggester,
	}
}

// Execute performs the suggestion.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	if uc.suggester == nil || !uc.suggester.IsAvailable() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeSuggestionUnavailable,
			"category suggestion service is not configured",
			domainerror.ErrSuggestionUnavailable,
		)
	}

	candidates, err := uc.categoryRepo.FindByUser(ctx, input.UserID, &input.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate categories: %w", err)
	}
	if len(candidates) == 0 {
		return &SuggestCategoryOutput{}, nil
	}

	name, err := uc.suggester.Suggest(ctx, input.Description, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest category: %w", err)
	}
	if name == "" {
		return &SuggestCategoryOutput{}, nil
	}

	for _, c := range candidates {
		if c.Name == name {
			return &SuggestCategoryOutput{Category: c}, nil
		}
	}

	// The model answered with something outside the candidate list; treat it
	// as no match rather than inventing a category.
	slog.Debug("suggestion outside candidate list",
		"userID", input.UserID,
		"suggestion", name,
	)
	return &SuggestCategoryOutput{}, nil
}

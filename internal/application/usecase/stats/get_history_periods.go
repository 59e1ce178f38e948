// Package stats contains dashboard aggregate use cases.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// GetHistoryPeriodsInput represents the input for a history periods query.
type GetHistoryPeriodsInput struct {
	UserID uuid.UUID
}

// GetHistoryPeriodsOutput lists the years the user has history for, ascending.
type GetHistoryPeriodsOutput struct {
	Years []int
}

// GetHistoryPeriodsUseCase returns the selectable years for history charts.
type GetHistoryPeriodsUseCase struct {
	historyRepo adapter.HistoryRepository
}

// NewGetHistoryPeriodsUseCase creates a new GetHistoryPeriodsUseCase instance.
func NewGetHistoryPeriodsUseCase(historyRepo adapter.HistoryRepository) *GetHistoryPeriodsUseCase {
	return &GetHistoryPeriodsUseCase{
		historyRepo: historyRepo,
	}
}

// Execute performs the query. A user without any history gets the current year
// so pickers always have a selection.
func (uc *GetHistoryPeriodsUseCase) Execute(ctx context.Context, input GetHistoryPeriodsInput) (*GetHistoryPeriodsOutput, error) {
	years, err := uc.historyRepo.DistinctYears(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read history periods: %w", err)
	}

	if len(years) == 0 {
		years = []int{time.Now().UTC().Year()}
	}

	return &GetHistoryPeriodsOutput{Years: years}, nil
}

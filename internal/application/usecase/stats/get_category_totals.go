// Package stats contains dashboard aggregate use cases.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// GetCategoryTotalsInput represents the input for a category breakdown query.
type GetCategoryTotalsInput struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
	Type   entity.TransactionType
}

// GetCategoryTotalsOutput represents per-category sums, largest first.
type GetCategoryTotalsOutput struct {
	Totals []*entity.CategoryTotal
}

// GetCategoryTotalsUseCase sums the ledger per category snapshot for the
// dashboard breakdown cards.
type GetCategoryTotalsUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewGetCategoryTotalsUseCase creates a new GetCategoryTotalsUseCase instance.
func NewGetCategoryTotalsUseCase(ledgerRepo adapter.LedgerRepository) *GetCategoryTotalsUseCase {
	return &GetCategoryTotalsUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute performs the breakdown query.
func (uc *GetCategoryTotalsUseCase) Execute(ctx context.Context, input GetCategoryTotalsInput) (*GetCategoryTotalsOutput, error) {
	if input.Type != entity.TransactionTypeExpense && input.Type != entity.TransactionTypeIncome {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if input.To.Before(input.From) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			"'to' must not be before 'from'",
			domainerror.ErrInvalidDateRange,
		)
	}

	totals, err := uc.ledgerRepo.SumByCategory(ctx, input.UserID, input.From, input.To, input.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to sum by category: %w", err)
	}

	return &GetCategoryTotalsOutput{Totals: totals}, nil
}

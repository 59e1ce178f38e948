// Package stats contains dashboard aggregate use cases.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// GetBalanceInput represents the input for a balance query.
type GetBalanceInput struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
}

// GetBalanceOutput represents income and expense totals for the range.
type GetBalanceOutput struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// GetBalanceUseCase sums ledger rows by type within an inclusive date range.
// It reads the ledger, not the rollups; the rollups only exist to serve the
// coarser-grained history charts.
type GetBalanceUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewGetBalanceUseCase creates a new GetBalanceUseCase instance.
func NewGetBalanceUseCase(ledgerRepo adapter.LedgerRepository) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute performs the balance query. Both sums default to zero when no rows match.
func (uc *GetBalanceUseCase) Execute(ctx context.Context, input GetBalanceInput) (*GetBalanceOutput, error) {
	if input.To.Before(input.From) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			"'to' must not be before 'from'",
			domainerror.ErrInvalidDateRange,
		)
	}

	balance, err := uc.ledgerRepo.SumByType(ctx, input.UserID, input.From, input.To)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger: %w", err)
	}

	return &GetBalanceOutput{
		Income:  balance.Income,
		Expense: balance.Expense,
	}, nil
}

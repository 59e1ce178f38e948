// Package transaction contains ledger transaction use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase lists a user's ledger entries within a date range.
type ListTransactionsUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(ledgerRepo adapter.LedgerRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.To.Before(input.From) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			"'to' must not be before 'from'",
			domainerror.ErrInvalidDateRange,
		)
	}

	transactions, err := uc.ledgerRepo.FindByUserAndRange(ctx, input.UserID, input.From, input.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{Transactions: transactions}, nil
}

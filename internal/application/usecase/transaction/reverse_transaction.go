// Package transaction contains ledger transaction use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ReverseTransactionInput represents the input for reversing a transaction.
type ReverseTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// ReverseTransactionOutput represents the output of reversing a transaction.
type ReverseTransactionOutput struct {
	Success bool
}

// ReverseTransactionUseCase deletes a ledger entry and backs its amount out of
// the rollup buckets.
type ReverseTransactionUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewReverseTransactionUseCase creates a new ReverseTransactionUseCase instance.
func NewReverseTransactionUseCase(ledgerRepo adapter.LedgerRepository) *ReverseTransactionUseCase {
	return &ReverseTransactionUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute performs the transaction reversal. A transaction owned by a
// different user is indistinguishable from an absent one.
func (uc *ReverseTransactionUseCase) Execute(ctx context.Context, input ReverseTransactionInput) (*ReverseTransactionOutput, error) {
	transaction, err := uc.ledgerRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != input.UserID {
		return nil, notFoundError()
	}

	if err := uc.ledgerRepo.Reverse(ctx, transaction); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to reverse transaction: %w", err)
	}

	return &ReverseTransactionOutput{Success: true}, nil
}

func notFoundError() error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

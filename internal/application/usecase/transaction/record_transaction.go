// Package transaction contains ledger transaction use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// RecordTransactionInput represents the input for recording a ledger transaction.
type RecordTransactionInput struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Category    string
	Description string
	Date        time.Time
}

// RecordTransactionOutput represents the output of recording a transaction.
type RecordTransactionOutput struct {
	Transaction *entity.Transaction
}

// RecordTransactionUseCase validates a transaction, snapshots its category and
// hands the atomic ledger+rollup write to the repository.
type RecordTransactionUseCase struct {
	ledgerRepo   adapter.LedgerRepository
	categoryRepo adapter.CategoryRepository
}

// NewRecordTransactionUseCase creates a new RecordTransactionUseCase instance.
func NewRecordTransactionUseCase(
	ledgerRepo adapter.LedgerRepository,
	categoryRepo adapter.CategoryRepository,
) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the transaction recording. Validation failures reject the
// input before any side effect; the repository guarantees the three-part write
// commits atomically.
func (uc *RecordTransactionUseCase) Execute(ctx context.Context, input RecordTransactionInput) (*RecordTransactionOutput, error) {
	if !isValidTransactionType(input.Type) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	// Resolve the category and copy its name/icon onto the transaction. The
	// snapshot keeps the ledger row stable against later category edits.
	category, err := uc.categoryRepo.FindByName(ctx, input.UserID, input.Category)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeLedgerCategoryNotFound,
				fmt.Sprintf("category %q not found", input.Category),
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Amount,
		input.Type,
		category,
		input.Description,
		input.Date,
	)

	if err := uc.ledgerRepo.Record(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	return &RecordTransactionOutput{Transaction: transaction}, nil
}

// isValidTransactionType validates the transaction type.
func isValidTransactionType(transactionType entity.TransactionType) bool {
	return transactionType == entity.TransactionTypeExpense || transactionType == entity.TransactionTypeIncome
}

// Package transaction contains ledger transaction use cases.
package transaction

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExportTransactionsInput represents the input for exporting transactions.
type ExportTransactionsInput struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
}

// ExportTransactionsOutput represents the output of exporting transactions.
type ExportTransactionsOutput struct {
	Filename string
	Content  []byte
}

// ExportTransactionsUseCase renders a user's ledger entries in a date range as CSV.
type ExportTransactionsUseCase struct {
	listUseCase *ListTransactionsUseCase
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(listUseCase *ListTransactionsUseCase) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		listUseCase: listUseCase,
	}
}

// Execute performs the export.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	listed, err := uc.listUseCase.Execute(ctx, ListTransactionsInput(input))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "type", "category", "description", "amount"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, txn := range listed.Transactions {
		record := []string{
			txn.Date.UTC().Format("2006-01-02"),
			string(txn.Type),
			txn.Category,
			txn.Description,
			txn.Amount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv",
		input.From.UTC().Format("2006-01-02"),
		input.To.UTC().Format("2006-01-02"),
	)

	return &ExportTransactionsOutput{
		Filename: filename,
		Content:  buf.Bytes(),
	}, nil
}

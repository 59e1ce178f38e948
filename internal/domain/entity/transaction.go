// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents one immutable ledger entry. Category and CategoryIcon
// are point-in-time copies of the referenced category, so later category edits
// never alter historical rows.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Amount       decimal.Decimal // always positive; Type selects the side
	Type         TransactionType
	Category     string
	CategoryIcon string
	Description  string
	Date         time.Time
	CreatedAt    time.Time
}

// NewTransaction creates a new Transaction entity with the category snapshot applied.
func NewTransaction(
	userID uuid.UUID,
	amount decimal.Decimal,
	transactionType TransactionType,
	category *Category,
	description string,
	date time.Time,
) *Transaction {
	return &Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		Amount:       amount,
		Type:         transactionType,
		Category:     category.Name,
		CategoryIcon: category.Icon,
		Description:  description,
		Date:         date.UTC(),
		CreatedAt:    time.Now().UTC(),
	}
}

// BucketFor returns the rollup bucket coordinates for a transaction date.
// Months are zero-based (0-11) to match the stored history rows; the date is
// normalized to UTC so the write path and the read path always agree on the
// calendar day.
func BucketFor(date time.Time) (year, month, day int) {
	d := date.UTC()
	return d.Year(), int(d.Month()) - 1, d.Day()
}

// Balance represents income and expense sums over a ledger date range.
type Balance struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// CategoryTotal represents the ledger sum for a single category snapshot.
type CategoryTotal struct {
	Category     string
	CategoryIcon string
	Type         TransactionType
	Total        decimal.Decimal
}

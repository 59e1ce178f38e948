// Package adapter defines interfaces for external dependencies (repositories, services).
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// LedgerRepository persists the transaction ledger together with its rollup
// buckets. Record and Reverse are the aggregate-consistency core: each must
// apply the ledger write and both rollup updates as a single atomic unit, and
// concurrent increments to the same bucket must serialize in the store.
type LedgerRepository interface {
	// Record inserts the transaction and additively upserts its month and year
	// buckets. No partial writes: all three effects commit or none do.
	Record(ctx context.Context, transaction *entity.Transaction) error

	// Reverse deletes the transaction and decrements the matching field of both
	// buckets. Buckets are never deleted; a would-be-negative bucket aborts the
	// whole operation with ErrConsistencyViolation.
	Reverse(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUserAndRange retrieves a user's transactions within the inclusive
	// date range, newest first.
	FindByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error)

	// SumByType sums ledger amounts by type within the inclusive date range.
	// Sums default to zero when no rows match.
	SumByType(ctx context.Context, userID uuid.UUID, from, to time.Time) (*entity.Balance, error)

	// SumByCategory sums ledger amounts per category snapshot within the
	// inclusive date range, restricted to the given type, largest first.
	SumByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time, transactionType entity.TransactionType) ([]*entity.CategoryTotal, error)
}

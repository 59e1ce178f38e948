// Package adapter defines interfaces for external dependencies (repositories, services).
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// HistoryRepository reads the precomputed rollup buckets. Writes go exclusively
// through LedgerRepository so the rollups can never drift from the ledger.
type HistoryRepository interface {
	// FindYearBuckets returns the stored month-level buckets of a year, in
	// month order. Absent months are simply missing; callers zero-fill.
	FindYearBuckets(ctx context.Context, userID uuid.UUID, year int) ([]*entity.YearHistory, error)

	// FindMonthBuckets returns the stored day-level buckets of a month
	// (zero-based), in day order.
	FindMonthBuckets(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.MonthHistory, error)

	// DistinctYears returns the years for which the user has any bucket, ascending.
	DistinctYears(ctx context.Context, userID uuid.UUID) ([]int, error)
}

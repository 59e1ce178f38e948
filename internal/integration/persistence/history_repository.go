// Package persistence contains repository implementations using GORM.
package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// HistoryRepository implements the adapter.HistoryRepository interface. It is
// read only; the rollup tables are written exclusively by LedgerRepository.
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository instance.
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// FindYearBuckets returns the stored month-level buckets of a year, in month order.
func (r *HistoryRepository) FindYearBuckets(ctx context.Context, userID uuid.UUID, year int) ([]*entity.YearHistory, error) {
	var models []model.YearHistoryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ?", userID, year).
		Order("month ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find year buckets: %w", err)
	}

	buckets := make([]*entity.YearHistory, 0, len(models))
	for i := range models {
		buckets = append(buckets, models[i].ToEntity())
	}
	return buckets, nil
}

// FindMonthBuckets returns the stored day-level buckets of a month, in day order.
func (r *HistoryRepository) FindMonthBuckets(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.MonthHistory, error) {
	var models []model.MonthHistoryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("day ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find month buckets: %w", err)
	}

	buckets := make([]*entity.MonthHistory, 0, len(models))
	for i := range models {
		buckets = append(buckets, models[i].ToEntity())
	}
	return buckets, nil
}

// DistinctYears returns the years for which the user has any bucket, ascending.
func (r *HistoryRepository) DistinctYears(ctx context.Context, userID uuid.UUID) ([]int, error) {
	var years []int
	if err := r.db.WithContext(ctx).
		Model(&model.YearHistoryModel{}).
		Distinct("year").
		Where("user_id = ?", userID).
		Order("year ASC").
		Pluck("year", &years).Error; err != nil {
		return nil, fmt.Errorf("failed to find distinct years: %w", err)
	}
	return years, nil
}

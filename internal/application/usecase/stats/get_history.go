// Package stats contains dashboard aggregate use cases.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// GetHistoryInput represents the input for a history query. Month is zero-based
// and only consulted for the month timeframe.
type GetHistoryInput struct {
	UserID    uuid.UUID
	Timeframe entity.Timeframe
	Year      int
	Month     int
}

// HistoryPoint is one chart bucket. Day is set only for the month timeframe.
type HistoryPoint struct {
	Year    int
	Month   int
	Day     *int
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// GetHistoryOutput represents the ordered, gap-free bucket series.
type GetHistoryOutput struct {
	Points []HistoryPoint
}

// GetHistoryUseCase reads the precomputed rollups and zero-fills absent
// buckets so consumers never special-case missing data: a year query always
// yields 12 points, a month query one point per calendar day.
type GetHistoryUseCase struct {
	historyRepo adapter.HistoryRepository
}

// NewGetHistoryUseCase creates a new GetHistoryUseCase instance.
func NewGetHistoryUseCase(historyRepo adapter.HistoryRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		historyRepo: historyRepo,
	}
}

// Execute performs the history query.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, input GetHistoryInput) (*GetHistoryOutput, error) {
	switch input.Timeframe {
	case entity.TimeframeYear:
		return uc.yearHistory(ctx, input)
	case entity.TimeframeMonth:
		return uc.monthHistory(ctx, input)
	default:
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTimeframe,
			"timeframe must be 'month' or 'year'",
			domainerror.ErrInvalidTimeframe,
		)
	}
}

func (uc *GetHistoryUseCase) yearHistory(ctx context.Context, input GetHistoryInput) (*GetHistoryOutput, error) {
	buckets, err := uc.historyRepo.FindYearBuckets(ctx, input.UserID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to read year history: %w", err)
	}

	byMonth := make(map[int]*entity.YearHistory, len(buckets))
	for _, b := range buckets {
		byMonth[b.Month] = b
	}

	points := make([]HistoryPoint, 0, 12)
	for month := 0; month < 12; month++ {
		point := HistoryPoint{
			Year:    input.Year,
			Month:   month,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		if b, ok := byMonth[month]; ok {
			point.Income = b.Income
			point.Expense = b.Expense
		}
		points = append(points, point)
	}

	return &GetHistoryOutput{Points: points}, nil
}

func (uc *GetHistoryUseCase) monthHistory(ctx context.Context, input GetHistoryInput) (*GetHistoryOutput, error) {
	if input.Month < 0 || input.Month > 11 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidHistoryMonth,
			"month must be between 0 and 11",
			domainerror.ErrInvalidHistoryMonth,
		)
	}

	buckets, err := uc.historyRepo.FindMonthBuckets(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to read month history: %w", err)
	}

	byDay := make(map[int]*entity.MonthHistory, len(buckets))
	for _, b := range buckets {
		byDay[b.Day] = b
	}

	days := daysInMonth(input.Year, input.Month)
	points := make([]HistoryPoint, 0, days)
	for day := 1; day <= days; day++ {
		d := day
		point := HistoryPoint{
			Year:    input.Year,
			Month:   input.Month,
			Day:     &d,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		if b, ok := byDay[day]; ok {
			point.Income = b.Income
			point.Expense = b.Expense
		}
		points = append(points, point)
	}

	return &GetHistoryOutput{Points: points}, nil
}

// daysInMonth returns the number of days in a zero-based month. Day 0 of the
// following month normalizes to the last day of the requested one.
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

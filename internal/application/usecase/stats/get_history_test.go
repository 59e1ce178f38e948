// Package stats contains dashboard aggregate use cases.
package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

type fakeHistoryRepo struct {
	yearBuckets  []*entity.YearHistory
	monthBuckets []*entity.MonthHistory
	years        []int
}

func (f *fakeHistoryRepo) FindYearBuckets(ctx context.Context, userID uuid.UUID, year int) ([]*entity.YearHistory, error) {
	return f.yearBuckets, nil
}

func (f *fakeHistoryRepo) FindMonthBuckets(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.MonthHistory, error) {
	return f.monthBuckets, nil
}

func (f *fakeHistoryRepo) DistinctYears(ctx context.Context, userID uuid.UUID) ([]int, error) {
	return f.years, nil
}

func TestGetHistoryUseCase_YearTimeframe(t *testing.T) {
	userID := uuid.New()
	repo := &fakeHistoryRepo{
		yearBuckets: []*entity.YearHistory{
			{UserID: userID, Year: 2024, Month: 2, Income: decimal.RequireFromString("100.00"), Expense: decimal.RequireFromString("40.00")},
			{UserID: userID, Year: 2024, Month: 11, Income: decimal.Zero, Expense: decimal.RequireFromString("75.00")},
		},
	}
	uc := NewGetHistoryUseCase(repo)

	output, err := uc.Execute(context.Background(), GetHistoryInput{
		UserID:    userID,
		Timeframe: entity.TimeframeYear,
		Year:      2024,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(output.Points) != 12 {
		t.Fatalf("expected 12 points, got %d", len(output.Points))
	}

	for i, p := range output.Points {
		if p.Month != i {
			t.Errorf("point %d has month %d", i, p.Month)
		}
		if p.Day != nil {
			t.Errorf("year timeframe point %d should not carry a day", i)
		}
	}

	if !output.Points[2].Income.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("expected March income 100.00, got %s", output.Points[2].Income)
	}
	if !output.Points[11].Expense.Equal(decimal.RequireFromString("75.00")) {
		t.Errorf("expected December expense 75.00, got %s", output.Points[11].Expense)
	}
	// Months with no data zero-fill.
	if !output.Points[0].Income.IsZero() || !output.Points[0].Expense.IsZero() {
		t.Errorf("expected January zero-filled, got income=%s expense=%s",
			output.Points[0].Income, output.Points[0].Expense)
	}
}

func TestGetHistoryUseCase_MonthTimeframe(t *testing.T) {
	userID := uuid.New()

	t.Run("zero-fills every calendar day", func(t *testing.T) {
		repo := &fakeHistoryRepo{
			monthBuckets: []*entity.MonthHistory{
				{UserID: userID, Year: 2024, Month: 1, Day: 15, Income: decimal.Zero, Expense: decimal.RequireFromString("80.00")},
			},
		}
		uc := NewGetHistoryUseCase(repo)

		// February 2024 is a leap month with 29 days.
		output, err := uc.Execute(context.Background(), GetHistoryInput{
			UserID:    userID,
			Timeframe: entity.TimeframeMonth,
			Year:      2024,
			Month:     1,
		})
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}

		if len(output.Points) != 29 {
			t.Fatalf("expected 29 points, got %d", len(output.Points))
		}
		for i, p := range output.Points {
			if p.Day == nil || *p.Day != i+1 {
				t.Fatalf("point %d has wrong day", i)
			}
		}
		if !output.Points[14].Expense.Equal(decimal.RequireFromString("80.00")) {
			t.Errorf("expected day 15 expense 80.00, got %s", output.Points[14].Expense)
		}
		if !output.Points[0].Expense.IsZero() {
			t.Errorf("expected day 1 zero-filled, got %s", output.Points[0].Expense)
		}
	})

	t.Run("rejects out-of-range month", func(t *testing.T) {
		uc := NewGetHistoryUseCase(&fakeHistoryRepo{})
		_, err := uc.Execute(context.Background(), GetHistoryInput{
			UserID:    userID,
			Timeframe: entity.TimeframeMonth,
			Year:      2024,
			Month:     12,
		})
		if !errors.Is(err, domainerror.ErrInvalidHistoryMonth) {
			t.Fatalf("expected ErrInvalidHistoryMonth, got %v", err)
		}
	})
}

func TestGetHistoryUseCase_InvalidTimeframe(t *testing.T) {
	uc := NewGetHistoryUseCase(&fakeHistoryRepo{})
	_, err := uc.Execute(context.Background(), GetHistoryInput{
		UserID:    uuid.New(),
		Timeframe: "week",
		Year:      2024,
	})
	if !errors.Is(err, domainerror.ErrInvalidTimeframe) {
		t.Fatalf("expected ErrInvalidTimeframe, got %v", err)
	}
}

func TestGetHistoryPeriodsUseCase(t *testing.T) {
	t.Run("returns stored years", func(t *testing.T) {
		uc := NewGetHistoryPeriodsUseCase(&fakeHistoryRepo{years: []int{2022, 2023, 2024}})
		output, err := uc.Execute(context.Background(), GetHistoryPeriodsInput{UserID: uuid.New()})
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if len(output.Years) != 3 || output.Years[0] != 2022 {
			t.Errorf("unexpected years: %v", output.Years)
		}
	})

	t.Run("falls back to current year when empty", func(t *testing.T) {
		uc := NewGetHistoryPeriodsUseCase(&fakeHistoryRepo{})
		output, err := uc.Execute(context.Background(), GetHistoryPeriodsInput{UserID: uuid.New()})
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if len(output.Years) != 1 {
			t.Fatalf("expected exactly one fallback year, got %v", output.Years)
		}
	})
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 0, 31},  // January
		{2024, 1, 29},  // leap February
		{2023, 1, 28},  // plain February
		{2024, 3, 30},  // April
		{2024, 11, 31}, // December
	}
	for _, c := range cases {
		if got := daysInMonth(c.year, c.month); got != c.want {
			t.Errorf("daysInMonth(%d, %d) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

// Package persistence contains repository implementations using GORM.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// LedgerRepository implements the adapter.LedgerRepository interface. Every
// ledger write runs inside one database transaction covering the transactions
// row and both rollup tables, so readers never observe a partially applied
// entry.
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new LedgerRepository instance.
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Record inserts the ledger row and additively upserts the month and year
// buckets for the transaction's date. The bucket increments use ON CONFLICT
// arithmetic so concurrent writers to the same bucket serialize on the row
// instead of racing a read-modify-write.
func (r *LedgerRepository) Record(ctx context.Context, transaction *entity.Transaction) error {
	year, month, day := entity.BucketFor(transaction.Date)
	income, expense := splitAmount(transaction)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txModel model.TransactionModel
		txModel.FromEntity(transaction)
		if err := tx.Create(&txModel).Error; err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		monthBucket := model.MonthHistoryModel{
			UserID:  transaction.UserID,
			Year:    year,
			Month:   month,
			Day:     day,
			Income:  income,
			Expense: expense,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}, {Name: "day"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"income":  gorm.Expr("income + excluded.income"),
				"expense": gorm.Expr("expense + excluded.expense"),
			}),
		}).Create(&monthBucket).Error; err != nil {
			return fmt.Errorf("failed to upsert month bucket: %w", err)
		}

		yearBucket := model.YearHistoryModel{
			UserID:  transaction.UserID,
			Year:    year,
			Month:   month,
			Income:  income,
			Expense: expense,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"income":  gorm.Expr("income + excluded.income"),
				"expense": gorm.Expr("expense + excluded.expense"),
			}),
		}).Create(&yearBucket).Error; err != nil {
			return fmt.Errorf("failed to upsert year bucket: %w", err)
		}

		return nil
	})
}

// Reverse deletes the ledger row and backs its amount out of both buckets.
// Bucket rows are kept even when they reach zero. A missing bucket or a
// decrement that would drive a sum negative means the rollups have drifted
// from the ledger; the whole transaction is rolled back with
// ErrConsistencyViolation instead of clamping.
func (r *LedgerRepository) Reverse(ctx context.Context, transaction *entity.Transaction) error {
	year, month, day := entity.BucketFor(transaction.Date)
	column := "expense"
	if transaction.Type == entity.TransactionTypeIncome {
		column = "income"
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
			Delete(&model.TransactionModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}

		monthResult := tx.Model(&model.MonthHistoryModel{}).
			Where("user_id = ? AND year = ? AND month = ? AND day = ?", transaction.UserID, year, month, day).
			UpdateColumn(column, gorm.Expr(column+" - ?", transaction.Amount))
		if monthResult.Error != nil {
			return fmt.Errorf("failed to decrement month bucket: %w", monthResult.Error)
		}
		if monthResult.RowsAffected == 0 {
			return consistencyError(slog.With(
				"transaction_id", transaction.ID,
				"table", "month_histories",
			), "rollup bucket missing for recorded transaction")
		}

		yearResult := tx.Model(&model.YearHistoryModel{}).
			Where("user_id = ? AND year = ? AND month = ?", transaction.UserID, year, month).
			UpdateColumn(column, gorm.Expr(column+" - ?", transaction.Amount))
		if yearResult.Error != nil {
			return fmt.Errorf("failed to decrement year bucket: %w", yearResult.Error)
		}
		if yearResult.RowsAffected == 0 {
			return consistencyError(slog.With(
				"transaction_id", transaction.ID,
				"table", "year_histories",
			), "rollup bucket missing for recorded transaction")
		}

		var monthBucket model.MonthHistoryModel
		if err := tx.Where("user_id = ? AND year = ? AND month = ? AND day = ?", transaction.UserID, year, month, day).
			First(&monthBucket).Error; err != nil {
			return fmt.Errorf("failed to re-read month bucket: %w", err)
		}
		if monthBucket.Income.IsNegative() || monthBucket.Expense.IsNegative() {
			return consistencyError(slog.With(
				"transaction_id", transaction.ID,
				"table", "month_histories",
			), "rollup bucket would go negative")
		}

		var yearBucket model.YearHistoryModel
		if err := tx.Where("user_id = ? AND year = ? AND month = ?", transaction.UserID, year, month).
			First(&yearBucket).Error; err != nil {
			return fmt.Errorf("failed to re-read year bucket: %w", err)
		}
		if yearBucket.Income.IsNegative() || yearBucket.Expense.IsNegative() {
			return consistencyError(slog.With(
				"transaction_id", transaction.ID,
				"table", "year_histories",
			), "rollup bucket would go negative")
		}

		return nil
	})
}

// FindByID retrieves a transaction by its ID.
func (r *LedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txModel model.TransactionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&txModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return txModel.ToEntity(), nil
}

// rangeEnd returns the first instant after the calendar day of to. Range
// predicates compare date < rangeEnd(to) so a range ending on a day covers
// that day's timed entries, the same day granularity the rollup buckets use.
func rangeEnd(to time.Time) time.Time {
	to = to.UTC()
	return time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

// FindByUserAndRange retrieves a user's transactions within the inclusive date
// range, newest first.
func (r *LedgerRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error) {
	var models []model.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from.UTC(), rangeEnd(to)).
		Order("date DESC, created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, models[i].ToEntity())
	}
	return transactions, nil
}

// SumByType sums ledger amounts by type within the inclusive date range.
// Balance queries read the ledger directly so an arbitrary range never has to
// line up with bucket boundaries.
func (r *LedgerRepository) SumByType(ctx context.Context, userID uuid.UUID, from, to time.Time) (*entity.Balance, error) {
	balance := &entity.Balance{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}

	rows := []struct {
		Type  string
		Total decimal.Decimal
	}{}
	if err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from.UTC(), rangeEnd(to)).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to sum transactions: %w", err)
	}

	for _, row := range rows {
		switch entity.TransactionType(row.Type) {
		case entity.TransactionTypeIncome:
			balance.Income = row.Total
		case entity.TransactionTypeExpense:
			balance.Expense = row.Total
		}
	}
	return balance, nil
}

// SumByCategory sums ledger amounts per category snapshot within the inclusive
// date range, restricted to the given type, largest first.
func (r *LedgerRepository) SumByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time, transactionType entity.TransactionType) ([]*entity.CategoryTotal, error) {
	rows := []struct {
		Category     string
		CategoryIcon string
		Total        decimal.Decimal
	}{}
	if err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("category, category_icon, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?", userID, string(transactionType), from.UTC(), rangeEnd(to)).
		Group("category, category_icon").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to sum by category: %w", err)
	}

	totals := make([]*entity.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, &entity.CategoryTotal{
			Category:     row.Category,
			CategoryIcon: row.CategoryIcon,
			Type:         transactionType,
			Total:        row.Total,
		})
	}
	return totals, nil
}

// splitAmount maps the transaction amount onto the income or expense side of a
// rollup bucket.
func splitAmount(transaction *entity.Transaction) (income, expense decimal.Decimal) {
	if transaction.Type == entity.TransactionTypeIncome {
		return transaction.Amount, decimal.Zero
	}
	return decimal.Zero, transaction.Amount
}

func consistencyError(logger *slog.Logger, message string) error {
	logger.Error("ledger consistency violation", "detail", message)
	return domainerror.NewLedgerError(
		domainerror.ErrCodeConsistencyViolation,
		message,
		domainerror.ErrConsistencyViolation,
	)
}

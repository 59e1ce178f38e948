// Package persistence contains repository implementations using GORM.
package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.TransactionModel{},
		&model.MonthHistoryModel{},
		&model.YearHistoryModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestTransaction(userID uuid.UUID, amount string, txType entity.TransactionType, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		Amount:       decimal.RequireFromString(amount),
		Type:         txType,
		Category:     "Groceries",
		CategoryIcon: "cart",
		Description:  "test entry",
		Date:         date.UTC(),
		CreatedAt:    time.Now().UTC(),
	}
}

func findMonthBucket(t *testing.T, db *gorm.DB, userID uuid.UUID, year, month, day int) *model.MonthHistoryModel {
	t.Helper()
	var bucket model.MonthHistoryModel
	err := db.Where("user_id = ? AND year = ? AND month = ? AND day = ?", userID, year, month, day).
		First(&bucket).Error
	if err != nil {
		t.Fatalf("month bucket not found: %v", err)
	}
	return &bucket
}

func findYearBucket(t *testing.T, db *gorm.DB, userID uuid.UUID, year, month int) *model.YearHistoryModel {
	t.Helper()
	var bucket model.YearHistoryModel
	err := db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&bucket).Error
	if err != nil {
		t.Fatalf("year bucket not found: %v", err)
	}
	return &bucket
}

func TestLedgerRepository_Record(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("writes ledger row and both buckets", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerRepository(db)
		userID := uuid.New()

		txn := newTestTransaction(userID, "50.00", entity.TransactionTypeExpense, date)
		if err := repo.Record(ctx, txn); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		var count int64
		db.Model(&model.TransactionModel{}).Where("id = ?", txn.ID).Count(&count)
		if count != 1 {
			t.Fatalf("expected 1 ledger row, got %d", count)
		}

		// March is stored as month index 2.
		monthBucket := findMonthBucket(t, db, userID, 2024, 2, 15)
		if !monthBucket.Expense.Equal(decimal.RequireFromString("50.00")) {
			t.Errorf("expected month bucket expense 50.00, got %s", monthBucket.Expense)
		}
		if !monthBucket.Income.IsZero() {
			t.Errorf("expected month bucket income 0, got %s", monthBucket.Income)
		}

		yearBucket := findYearBucket(t, db, userID, 2024, 2)
		if !yearBucket.Expense.Equal(decimal.RequireFromString("50.00")) {
			t.Errorf("expected year bucket expense 50.00, got %s", yearBucket.Expense)
		}
	})

	t.Run("accumulates into existing buckets", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerRepository(db)
		userID := uuid.New()

		first := newTestTransaction(userID, "50.00", entity.TransactionTypeExpense, date)
		second := newTestTransaction(userID, "30.00", entity.TransactionTypeExpense, date)
		if err := repo.Record(ctx, first); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if err := repo.Record(ctx, second); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		monthBucket := findMonthBucket(t, db, userID, 2024, 2, 15)
		if !monthBucket.Expense.Equal(decimal.RequireFromString("80.00")) {
			t.Errorf("expected accumulated expense 80.00, got %s", monthBucket.Expense)
		}

		yearBucket := findYearBucket(t, db, userID, 2024, 2)
		if !yearBucket.Expense.Equal(decimal.RequireFromString("80.00")) {
			t.Errorf("expected accumulated year expense 80.00, got %s", yearBucket.Expense)
		}
	})

	t.Run("income and expense land on separate sides", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerRepository(db)
		userID := uuid.New()

		if err := repo.Record(ctx, newTestTransaction(userID, "100.00", entity.TransactionTypeIncome, date)); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if err := repo.Record(ctx, newTestTransaction(userID, "40.00", entity.TransactionTypeExpense, date)); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		bucket := findMonthBucket(t, db, userID, 2024, 2, 15)
		if !bucket.Income.Equal(decimal.RequireFromString("100.00")) {
			t.Errorf("expected income 100.00, got %s", bucket.Income)
		}
		if !bucket.Expense.Equal(decimal.RequireFromString("40.00")) {
			t.Errorf("expected expense 40.00, got %s", bucket.Expense)
		}
	})

	t.Run("rolls back all writes when a bucket upsert fails", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerRepository(db)
		userID := uuid.New()

		if err := db.Migrator().DropTable(&model.YearHistoryModel{}); err != nil {
			t.Fatalf("failed to drop table: %v", err)
		}

		txn := newTestTransaction(userID, "50.00", entity.TransactionTypeExpense, date)
		if err := repo.Record(ctx, txn); err == nil {
			t.Fatal("expected Record to fail")
		}

		var txnCount int64
		db.Model(&model.TransactionModel{}).Where("id = ?", txn.ID).Count(&txnCount)
		if txnCount != 0 {
			t.Errorf("expected ledger insert to roll back, found %d rows", txnCount)
		}

		var bucketCount int64
		db.Model(&model.MonthHistoryModel{}).Where("user_id = ?", userID).Count(&bucketCount)
		if bucketCount != 0 {
			t.Errorf("expected month bucket upsert to roll back, found %d rows", bucketCount)
		}
	})

	t.Run("december maps to month index 11", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerRepository(db)
		userID := uuid.New()

		decDate := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
		if err := repo.Record(ctx, newTestTransaction(userID, "10.00", entity.TransactionTypeExpense, decDate)); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		findMonthBucket(t, db, userID, 2024, 11, 31)
		findYearBucket(t, db, userID, 2024, 11)
	})
}

func TestLedgerRepository_Reverse(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("removes ledger row and decrements buckets", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerRepository(db)
		userID := uuid.New()

		first := newTestTransaction(userID, "50.00", entity.TransactionTypeExpense, date)
		second := newTestTransaction(userID, "30.00", entity.TransactionTypeExpense, date)
		if err := repo.Record(ctx, first); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if err := repo.Record(ctx, second); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		if err := repo.Reverse(ctx, first); err != nil {
			t.Fatalf("Reverse failed: %v", err)
		}

		var count int64
		db.Model(&model.TransactionModel{}).Where("id = ?", first.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected ledger row removed, found %d", count)
		}

		bucket := findMonthBucket(t, db, userID, 2024, 2, 15)
		if !bucket.Expense.Equal(decimal.RequireFromString("30.00")) {
			t.Errorf("expected expense 30.00 after reversal, got %s", bucket.Expense)
		}
	})

	t.Run("keeps bucket rows at zero instead of deleting them", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerRepository(db)
		userID := uuid.New()

		txn := newTestTransaction(userID, "50.00", entity.TransactionTypeExpense, date)
		if err := repo.Record(ctx, txn); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if err := repo.Reverse(ctx, txn); err != nil {
			t.Fatalf("Reverse failed: %v", err)
		}

		bucket := findMonthBucket(t, db, userID, 2024, 2, 15)
		if !bucket.Expense.IsZero() || !bucket.Income.IsZero() {
			t.Errorf("expected zeroed bucket, got income=%s expense=%s", bucket.Income, bucket.Expense)
		}
		findYearBucket(t, db, userID, 2024, 2)
	})

	t.Run("returns not found for an unknown transaction", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerRepository(db)

		txn := newTestTransaction(uuid.New(), "50.00", entity.TransactionTypeExpense, date)
		err := repo.Reverse(ctx, txn)
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("aborts with consistency violation when bucket is missing", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerRepository(db)
		userID := uuid.New()

		txn := newTestTransaction(userID, "50.00", entity.TransactionTypeExpense, date)
		if err := repo.Record(ctx, txn); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		if err := db.Where("user_id = ?", userID).Delete(&model.MonthHistoryModel{}).Error; err != nil {
			t.Fatalf("failed to corrupt bucket: %v", err)
		}

		err := repo.Reverse(ctx, txn)
		if !errors.Is(err, domainerror.ErrConsistencyViolation) {
			t.Fatalf("expected ErrConsistencyViolation, got %v", err)
		}

		// The whole reversal rolls back, including the ledger delete.
		var count int64
		db.Model(&model.TransactionModel{}).Where("id = ?", txn.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected ledger row preserved after rollback, found %d", count)
		}
	})

	t.Run("aborts with consistency violation when decrement would go negative", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerRepository(db)
		userID := uuid.New()

		txn := newTestTransaction(userID, "50.00", entity.TransactionTypeExpense, date)
		if err := repo.Record(ctx, txn); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		// Corrupt the bucket so the ledger amount exceeds what is stored.
		if err := db.Model(&model.MonthHistoryModel{}).
			Where("user_id = ?", userID).
			UpdateColumn("expense", decimal.RequireFromString("20.00")).Error; err != nil {
			t.Fatalf("failed to corrupt bucket: %v", err)
		}

		err := repo.Reverse(ctx, txn)
		if !errors.Is(err, domainerror.ErrConsistencyViolation) {
			t.Fatalf("expected ErrConsistencyViolation, got %v", err)
		}

		var count int64
		db.Model(&model.TransactionModel{}).Where("id = ?", txn.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected ledger row preserved after rollback, found %d", count)
		}
	})
}

func TestLedgerRepository_SumByType(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewLedgerRepository(db)
	userID := uuid.New()

	// Entries straddling a month boundary; a range query must follow the
	// actual dates, not bucket boundaries.
	entries := []struct {
		amount string
		txType entity.TransactionType
		date   time.Time
	}{
		{"100.00", entity.TransactionTypeIncome, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)},
		{"40.00", entity.TransactionTypeExpense, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"25.00", entity.TransactionTypeExpense, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)},
		{"999.00", entity.TransactionTypeExpense, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, e := range entries {
		if err := repo.Record(ctx, newTestTransaction(userID, e.amount, e.txType, e.date)); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	// A different user's entries must never leak into the sums.
	other := newTestTransaction(uuid.New(), "500.00", entity.TransactionTypeExpense,
		time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC))
	if err := repo.Record(ctx, other); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	from := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	balance, err := repo.SumByType(ctx, userID, from, to)
	if err != nil {
		t.Fatalf("SumByType failed: %v", err)
	}

	if !balance.Income.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("expected income 100.00, got %s", balance.Income)
	}
	if !balance.Expense.Equal(decimal.RequireFromString("65.00")) {
		t.Errorf("expected expense 65.00, got %s", balance.Expense)
	}

	t.Run("covers timed entries through the end of the boundary day", func(t *testing.T) {
		timedUser := uuid.New()
		timed := newTestTransaction(timedUser, "100.00", entity.TransactionTypeIncome,
			time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))
		if err := repo.Record(ctx, timed); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		// A single-day range given as midnight instants must still see the
		// 10:00 entry recorded on that day.
		day := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
		balance, err := repo.SumByType(ctx, timedUser, day, day)
		if err != nil {
			t.Fatalf("SumByType failed: %v", err)
		}
		if !balance.Income.Equal(decimal.RequireFromString("100.00")) {
			t.Errorf("expected income 100.00 on the boundary day, got %s", balance.Income)
		}
	})

	t.Run("empty range yields zero sums", func(t *testing.T) {
		emptyFrom := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
		emptyTo := time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC)
		balance, err := repo.SumByType(ctx, userID, emptyFrom, emptyTo)
		if err != nil {
			t.Fatalf("SumByType failed: %v", err)
		}
		if !balance.Income.IsZero() || !balance.Expense.IsZero() {
			t.Errorf("expected zero balance, got income=%s expense=%s", balance.Income, balance.Expense)
		}
	})
}

func TestLedgerRepository_SumByCategory(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewLedgerRepository(db)
	userID := uuid.New()
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	groceries1 := newTestTransaction(userID, "50.00", entity.TransactionTypeExpense, date)
	groceries2 := newTestTransaction(userID, "30.00", entity.TransactionTypeExpense, date)
	rent := newTestTransaction(userID, "900.00", entity.TransactionTypeExpense, date)
	rent.Category = "Rent"
	rent.CategoryIcon = "home"
	salary := newTestTransaction(userID, "3000.00", entity.TransactionTypeIncome, date)
	salary.Category = "Salary"

	for _, txn := range []*entity.Transaction{groceries1, groceries2, rent, salary} {
		if err := repo.Record(ctx, txn); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	totals, err := repo.SumByCategory(ctx, userID, from, to, entity.TransactionTypeExpense)
	if err != nil {
		t.Fatalf("SumByCategory failed: %v", err)
	}

	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}
	if totals[0].Category != "Rent" || !totals[0].Total.Equal(decimal.RequireFromString("900.00")) {
		t.Errorf("expected Rent 900.00 first, got %s %s", totals[0].Category, totals[0].Total)
	}
	if totals[1].Category != "Groceries" || !totals[1].Total.Equal(decimal.RequireFromString("80.00")) {
		t.Errorf("expected Groceries 80.00 second, got %s %s", totals[1].Category, totals[1].Total)
	}
}

func TestLedgerRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewLedgerRepository(db)

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("round-trips a stored transaction", func(t *testing.T) {
		txn := newTestTransaction(uuid.New(), "12.34", entity.TransactionTypeExpense,
			time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
		if err := repo.Record(ctx, txn); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		found, err := repo.FindByID(ctx, txn.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if found.UserID != txn.UserID || !found.Amount.Equal(txn.Amount) || found.Category != txn.Category {
			t.Errorf("stored transaction mismatch: got %+v", found)
		}
	})
}

func TestLedgerRepository_FindByUserAndRange(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewLedgerRepository(db)
	userID := uuid.New()

	older := newTestTransaction(userID, "10.00", entity.TransactionTypeExpense,
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	newer := newTestTransaction(userID, "20.00", entity.TransactionTypeExpense,
		time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC))
	boundary := newTestTransaction(userID, "25.00", entity.TransactionTypeExpense,
		time.Date(2024, time.March, 31, 18, 30, 0, 0, time.UTC))
	outside := newTestTransaction(userID, "30.00", entity.TransactionTypeExpense,
		time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))

	for _, txn := range []*entity.Transaction{older, newer, boundary, outside} {
		if err := repo.Record(ctx, txn); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	listed, err := repo.FindByUserAndRange(ctx, userID, from, to)
	if err != nil {
		t.Fatalf("FindByUserAndRange failed: %v", err)
	}

	// The evening entry on the 31st belongs to the range even though the
	// range end was given as a midnight instant.
	if len(listed) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(listed))
	}
	if listed[0].ID != boundary.ID {
		t.Errorf("expected the boundary-day entry first, got %s", listed[0].ID)
	}
	if listed[1].ID != newer.ID {
		t.Errorf("expected newest-first ordering, got %s second", listed[1].ID)
	}
}

// Package transaction contains ledger transaction use cases.
package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

type fakeLedgerRepo struct {
	recorded []*entity.Transaction
	stored   map[uuid.UUID]*entity.Transaction
	reversed []*entity.Transaction
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{stored: make(map[uuid.UUID]*entity.Transaction)}
}

func (f *fakeLedgerRepo) Record(ctx context.Context, txn *entity.Transaction) error {
	f.recorded = append(f.recorded, txn)
	f.stored[txn.ID] = txn
	return nil
}

func (f *fakeLedgerRepo) Reverse(ctx context.Context, txn *entity.Transaction) error {
	if _, ok := f.stored[txn.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	delete(f.stored, txn.ID)
	f.reversed = append(f.reversed, txn)
	return nil
}

func (f *fakeLedgerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, ok := f.stored[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return txn, nil
}

func (f *fakeLedgerRepo) FindByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, txn := range f.stored {
		if txn.UserID == userID && !txn.Date.Before(from) && !txn.Date.After(to) {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) SumByType(ctx context.Context, userID uuid.UUID, from, to time.Time) (*entity.Balance, error) {
	return &entity.Balance{Income: decimal.Zero, Expense: decimal.Zero}, nil
}

func (f *fakeLedgerRepo) SumByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time, transactionType entity.TransactionType) ([]*entity.CategoryTotal, error) {
	return nil, nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
	for _, c := range categories {
		repo.categories[c.Name] = c
	}
	return repo
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	f.categories[c.Name] = c
	return nil
}

func (f *fakeCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID, transactionType *entity.TransactionType) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	if c, ok := f.categories[name]; ok {
		return c, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, userID uuid.UUID, name string) error {
	if _, ok := f.categories[name]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	delete(f.categories, name)
	return nil
}

func TestRecordTransactionUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	groceries := entity.NewCategory(userID, "Groceries", "cart", entity.TransactionTypeExpense)
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	validInput := func() RecordTransactionInput {
		return RecordTransactionInput{
			UserID:      userID,
			Amount:      decimal.RequireFromString("50.00"),
			Type:        entity.TransactionTypeExpense,
			Category:    "Groceries",
			Description: "weekly shop",
			Date:        date,
		}
	}

	t.Run("records a valid transaction with the category snapshot", func(t *testing.T) {
		ledgerRepo := newFakeLedgerRepo()
		uc := NewRecordTransactionUseCase(ledgerRepo, newFakeCategoryRepo(groceries))

		output, err := uc.Execute(context.Background(), validInput())
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}

		if len(ledgerRepo.recorded) != 1 {
			t.Fatalf("expected 1 recorded transaction, got %d", len(ledgerRepo.recorded))
		}
		txn := output.Transaction
		if txn.Category != "Groceries" || txn.CategoryIcon != "cart" {
			t.Errorf("expected category snapshot, got %s/%s", txn.Category, txn.CategoryIcon)
		}
		if txn.ID == uuid.Nil {
			t.Error("expected generated transaction ID")
		}
	})

	t.Run("snapshot survives later category changes", func(t *testing.T) {
		ledgerRepo := newFakeLedgerRepo()
		categoryRepo := newFakeCategoryRepo(groceries)
		uc := NewRecordTransactionUseCase(ledgerRepo, categoryRepo)

		output, err := uc.Execute(context.Background(), validInput())
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}

		if err := categoryRepo.Delete(context.Background(), userID, "Groceries"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		if output.Transaction.Category != "Groceries" || output.Transaction.CategoryIcon != "cart" {
			t.Errorf("snapshot changed after category delete: %s/%s",
				output.Transaction.Category, output.Transaction.CategoryIcon)
		}
	})

	t.Run("validation rejections", func(t *testing.T) {
		cases := []struct {
			name    string
			mutate  func(*RecordTransactionInput)
			wantErr error
		}{
			{
				name:    "invalid type",
				mutate:  func(in *RecordTransactionInput) { in.Type = "transfer" },
				wantErr: domainerror.ErrInvalidTransactionType,
			},
			{
				name:    "zero amount",
				mutate:  func(in *RecordTransactionInput) { in.Amount = decimal.Zero },
				wantErr: domainerror.ErrInvalidTransactionAmount,
			},
			{
				name:    "negative amount",
				mutate:  func(in *RecordTransactionInput) { in.Amount = decimal.RequireFromString("-5.00") },
				wantErr: domainerror.ErrInvalidTransactionAmount,
			},
			{
				name:    "zero date",
				mutate:  func(in *RecordTransactionInput) { in.Date = time.Time{} },
				wantErr: domainerror.ErrInvalidTransactionDate,
			},
			{
				name:    "description too long",
				mutate:  func(in *RecordTransactionInput) { in.Description = strings.Repeat("x", 256) },
				wantErr: domainerror.ErrDescriptionTooLong,
			},
			{
				name:    "unknown category",
				mutate:  func(in *RecordTransactionInput) { in.Category = "Missing" },
				wantErr: domainerror.ErrCategoryNotFoundForTransaction,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ledgerRepo := newFakeLedgerRepo()
				uc := NewRecordTransactionUseCase(ledgerRepo, newFakeCategoryRepo(groceries))

				input := validInput()
				tc.mutate(&input)

				_, err := uc.Execute(context.Background(), input)
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if len(ledgerRepo.recorded) != 0 {
					t.Error("validation failure must not reach the repository")
				}
			})
		}
	})
}

func TestReverseTransactionUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	groceries := entity.NewCategory(userID, "Groceries", "cart", entity.TransactionTypeExpense)
	txn := entity.NewTransaction(userID, decimal.RequireFromString("50.00"),
		entity.TransactionTypeExpense, groceries, "", time.Now().UTC())

	t.Run("reverses an owned transaction", func(t *testing.T) {
		ledgerRepo := newFakeLedgerRepo()
		_ = ledgerRepo.Record(context.Background(), txn)
		uc := NewReverseTransactionUseCase(ledgerRepo)

		output, err := uc.Execute(context.Background(), ReverseTransactionInput{
			TransactionID: txn.ID,
			UserID:        userID,
		})
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if !output.Success || len(ledgerRepo.reversed) != 1 {
			t.Error("expected transaction to be reversed")
		}
	})

	t.Run("treats another user's transaction as not found", func(t *testing.T) {
		ledgerRepo := newFakeLedgerRepo()
		_ = ledgerRepo.Record(context.Background(), txn)
		uc := NewReverseTransactionUseCase(ledgerRepo)

		_, err := uc.Execute(context.Background(), ReverseTransactionInput{
			TransactionID: txn.ID,
			UserID:        uuid.New(),
		})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
		if len(ledgerRepo.reversed) != 0 {
			t.Error("foreign transaction must not be reversed")
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		uc := NewReverseTransactionUseCase(newFakeLedgerRepo())
		_, err := uc.Execute(context.Background(), ReverseTransactionInput{
			TransactionID: uuid.New(),
			UserID:        userID,
		})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestListTransactionsUseCase_InvalidRange(t *testing.T) {
	uc := NewListTransactionsUseCase(newFakeLedgerRepo())
	_, err := uc.Execute(context.Background(), ListTransactionsInput{
		UserID: uuid.New(),
		From:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domainerror.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestExportTransactionsUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	groceries := entity.NewCategory(userID, "Groceries", "cart", entity.TransactionTypeExpense)
	ledgerRepo := newFakeLedgerRepo()
	txn := entity.NewTransaction(userID, decimal.RequireFromString("42.50"),
		entity.TransactionTypeExpense, groceries, "weekly shop",
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	_ = ledgerRepo.Record(context.Background(), txn)

	uc := NewExportTransactionsUseCase(NewListTransactionsUseCase(ledgerRepo))
	output, err := uc.Execute(context.Background(), ExportTransactionsInput{
		UserID: userID,
		From:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if output.Filename != "transactions_2024-03-01_2024-03-31.csv" {
		t.Errorf("unexpected filename %q", output.Filename)
	}

	content := string(output.Content)
	if !strings.HasPrefix(content, "date,type,category,description,amount\n") {
		t.Errorf("unexpected csv header in %q", content)
	}
	if !strings.Contains(content, "2024-03-15,expense,Groceries,weekly shop,42.50") {
		t.Errorf("expected csv row, got %q", content)
	}
}

// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if _, ok := f.categories[c.Name]; ok {
		return domainerror.ErrCategoryNameExists
	}
	f.categories[c.Name] = c
	return nil
}

func (f *fakeCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID, transactionType *entity.TransactionType) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if transactionType != nil && c.Type != *transactionType {
			continue
		}
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

type fakeSuggester struct {
	available bool
	answer    string
}

func (f *fakeSuggester) IsAvailable() bool { return f.available }

func (f *fakeSuggester) Suggest(ctx context.Context, description string, candidates []*entity.Category) (string, error) {
	return f.answer, nil
}

func TestCreateCategoryUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a category with default icon", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(newFakeCategoryRepo())
		output, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: userID,
			Name:   "Groceries",
			Type:   entity.TransactionTypeExpense,
		})
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if output.Category.Icon != entity.DefaultCategoryIcon {
			t.Errorf("expected default icon, got %q", output.Category.Icon)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := []struct {
			name    string
			input   CreateCategoryInput
			wantErr error
		}{
			{
				name:    "empty name",
				input:   CreateCategoryInput{UserID: userID, Type: entity.TransactionTypeExpense},
				wantErr: domainerror.ErrCategoryNameRequired,
			},
			{
				name: "name too long",
				input: CreateCategoryInput{
					UserID: userID,
					Name:   strings.Repeat("x", 51),
					Type:   entity.TransactionTypeExpense,
				},
				wantErr: domainerror.ErrCategoryNameTooLong,
			},
			{
				name:    "invalid type",
				input:   CreateCategoryInput{UserID: userID, Name: "Groceries", Type: "transfer"},
				wantErr: domainerror.ErrInvalidCategoryType,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uc := NewCreateCategoryUseCase(newFakeCategoryRepo())
				_, err := uc.Execute(context.Background(), tc.input)
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			})
		}
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		uc := NewCreateCategoryUseCase(repo)
		input := CreateCategoryInput{UserID: userID, Name: "Groceries", Type: entity.TransactionTypeExpense}

		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Fatalf("first create failed: %v", err)
		}
		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrCategoryNameExists) {
			t.Fatalf("expected ErrCategoryNameExists, got %v", err)
		}
	})
}

func TestDeleteCategoryUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	repo := newFakeCategoryRepo()
	_ = repo.Create(context.Background(), entity.NewCategory(userID, "Groceries", "cart", entity.TransactionTypeExpense))
	uc := NewDeleteCategoryUseCase(repo)

	if _, err := uc.Execute(context.Background(), DeleteCategoryInput{UserID: userID, Name: "Groceries"}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	_, err := uc.Execute(context.Background(), DeleteCategoryInput{UserID: userID, Name: "Groceries"})
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestSuggestCategoryUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	groceries := entity.NewCategory(userID, "Groceries", "cart", entity.TransactionTypeExpense)

	t.Run("unavailable suggester", func(t *testing.T) {
		uc := NewSuggestCategoryUseCase(newFakeCategoryRepo(), &fakeSuggester{available: false})
		_, err := uc.Execute(context.Background(), SuggestCategoryInput{
			UserID:      userID,
			Description: "supermarket run",
			Type:        entity.TransactionTypeExpense,
		})
		if !errors.Is(err, domainerror.ErrSuggestionUnavailable) {
			t.Fatalf("expected ErrSuggestionUnavailable, got %v", err)
		}
	})

	t.Run("matches a candidate", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		_ = repo.Create(context.Background(), groceries)
		uc := NewSuggestCategoryUseCase(repo, &fakeSuggester{available: true, answer: "Groceries"})

		output, err := uc.Execute(context.Background(), SuggestCategoryInput{
			UserID:      userID,
			Description: "supermarket run",
			Type:        entity.TransactionTypeExpense,
		})
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if output.Category == nil || output.Category.Name != "Groceries" {
			t.Errorf("expected Groceries suggestion, got %+v", output.Category)
		}
	})

	t.Run("answer outside the candidate list is dropped", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		_ = repo.Create(context.Background(), groceries)
		uc := NewSuggestCategoryUseCase(repo, &fakeSuggester{available: true, answer: "Casino"})

		output, err := uc.Execute(context.Background(), SuggestCategoryInput{
			UserID:      userID,
			Description: "supermarket run",
			Type:        entity.TransactionTypeExpense,
		})
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if output.Category != nil {
			t.Errorf("expected no suggestion, got %+v", output.Category)
		}
	})

	t.Run("no candidates yields no suggestion", func(t *testing.T) {
		uc := NewSuggestCategoryUseCase(newFakeCategoryRepo(), &fakeSuggester{available: true, answer: "Groceries"})
		output, err := uc.Execute(context.Background(), SuggestCategoryInput{
			UserID:      userID,
			Description: "supermarket run",
			Type:        entity.TransactionTypeExpense,
		})
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if output.Category != nil {
			t.Errorf("expected no suggestion, got %+v", output.Category)
		}
	})
}

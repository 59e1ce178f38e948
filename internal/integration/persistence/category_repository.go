// Package persistence contains repository implementations using GORM.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// CategoryRepository implements the adapter.CategoryRepository interface.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category. A duplicate (user, name) pair maps to
// ErrCategoryNameExists.
func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	var catModel model.CategoryModel
	catModel.FromEntity(category)

	if err := r.db.WithContext(ctx).Create(&catModel).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameExists,
				"category name already exists",
				domainerror.ErrCategoryNameExists,
			)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// FindByUser lists a user's categories, optionally filtered by type.
func (r *CategoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, transactionType *entity.TransactionType) ([]*entity.Category, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if transactionType != nil {
		query = query.Where("type = ?", string(*transactionType))
	}

	var models []model.CategoryModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*entity.Category, 0, len(models))
	for i := range models {
		categories = append(categories, models[i].ToEntity())
	}
	return categories, nil
}

// FindByName retrieves a user's category by name.
func (r *CategoryRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	var catModel model.CategoryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&catModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return catModel.ToEntity(), nil
}

// Delete removes a user's category by name. Ledger rows keep their snapshot.
func (r *CategoryRepository) Delete(ctx context.Context, userID uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Delete(&model.CategoryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	return nil
}

// isUniqueViolation detects unique constraint errors from PostgreSQL (class
// 23505) and from SQLite, which the test suite runs against.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}

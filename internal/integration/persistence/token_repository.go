// Package persistence contains repository implementations using GORM.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// ErrRefreshTokenNotFound is returned when a refresh token is absent or expired.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// TokenRepository stores hashed refresh tokens so they can be revoked.
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository instance.
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Store persists a refresh token hash with its expiry.
func (r *TokenRepository) Store(ctx context.Context, tokenHash string, userID uuid.UUID, expiresAt time.Time) error {
	record := model.RefreshTokenModel{
		TokenHash: tokenHash,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Exists reports whether an unexpired refresh token hash is stored.
func (r *TokenRepository) Exists(ctx context.Context, tokenHash string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ? AND expires_at > ?", tokenHash, time.Now().UTC()).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	return count > 0, nil
}

// Delete removes a refresh token hash. Deleting an absent hash is a no-op.
func (r *TokenRepository) Delete(ctx context.Context, tokenHash string) error {
	if err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&model.RefreshTokenModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// Package adapters contains service implementations for external integrations.
package adapters

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

const bcryptCost = 12

// PasswordService implements the adapter.PasswordService interface using bcrypt.
type PasswordService struct{}

// NewPasswordService creates a new PasswordService instance.
func NewPasswordService() *PasswordService {
	return &PasswordService{}
}

// HashPassword hashes a plaintext password.
func (s *PasswordService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored hash.
func (s *PasswordService) VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePasswordStrength requires at least 8 characters with one letter and
// one digit.
func (s *PasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return domainerror.ErrWeakPassword
	}
	return nil
}

// Package adapters contains service implementations for external integrations.
package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence"
)

const tokenIssuer = "budget-tracker"

// TokenService implements the adapter.TokenService interface with HS256 JWTs.
// Refresh tokens are additionally persisted (hashed) so they can be revoked.
type TokenService struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	tokenRepo       *persistence.TokenRepository
}

// NewTokenService creates a new TokenService instance.
func NewTokenService(secret string, accessTokenTTL, refreshTokenTTL time.Duration, tokenRepo *persistence.TokenRepository) *TokenService {
	return &TokenService{
		secret:          []byte(secret),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
		tokenRepo:       tokenRepo,
	}
}

type jwtClaims struct {
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateTokenPair generates a new access and refresh token pair and persists
// the refresh token hash.
func (s *TokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	accessToken, _, err := s.signToken(userID, email, "access", s.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, refreshExpiry, err := s.signToken(userID, email, "refresh", s.refreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.tokenRepo.Store(ctx, hashToken(refreshToken), userID, refreshExpiry); err != nil {
		return nil, err
	}

	return &adapter.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *TokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.parseToken(token, "access")
}

// ValidateRefreshToken validates a refresh token's signature and checks that
// its hash is still stored.
func (s *TokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.parseToken(token, "refresh")
	if err != nil {
		return nil, err
	}

	exists, err := s.tokenRepo.Exists(ctx, hashToken(token))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainerror.ErrInvalidToken
	}
	return claims, nil
}

// InvalidateRefreshToken revokes a refresh token.
func (s *TokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return s.tokenRepo.Delete(ctx, hashToken(token))
}

func (s *TokenService) signToken(userID uuid.UUID, email, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	claims := jwtClaims{
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *TokenService) parseToken(token, expectedType string) (*adapter.TokenClaims, error) {
	var claims jwtClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil || !parsed.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	if claims.TokenType != expectedType {
		return nil, domainerror.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerror.ErrInvalidToken
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

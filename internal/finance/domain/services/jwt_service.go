package services

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/finance/domain/apperr"
)

// DefaultTokenTTL - срок жизни токена сессии.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Ошибки JWT токенов.
var (
	ErrInvalidJWTToken    = fmt.Errorf("invalid JWT token: %w", apperr.ErrInvalidToken)
	ErrExpiredJWTToken    = fmt.Errorf("JWT token has expired: %w", apperr.ErrExpiredToken)
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
	ErrEmptySecretKey     = errors.New("JWT secret key is empty")
)

// JWTConfig содержит настройки для JWT сервиса.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
}

// JWTClaims определяет данные токена в терминах домена.
type JWTClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

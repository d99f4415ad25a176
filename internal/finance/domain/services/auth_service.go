// Package services содержит доменные типы аутентификации: сессии, claims токена и ошибки.
package services

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/domain/entities"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials  = fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthenticated)
	ErrMissingBearerToken  = fmt.Errorf("token not found: %w", apperr.ErrUnauthenticated)
	ErrLoginFieldsRequired = fmt.Errorf("please provide email and password: %w", apperr.ErrInvalidInput)
	ErrIdentityNotFound    = fmt.Errorf("user not found: %w", apperr.ErrUnknownIdentity)
	ErrNotOwner            = fmt.Errorf("access denied: %w", apperr.ErrAccessDenied)
	ErrTokenGenerationFail = errors.New("failed to generate authentication token")
)

// Session - результат регистрации или входа.
type Session struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}

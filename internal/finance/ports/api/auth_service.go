// Package api определяет порты сценариев использования для HTTP слоя.
package api

import (
	"context"

	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/domain/services"
)

// AuthUseCase - регистрация и вход.
type AuthUseCase interface {
	Register(ctx context.Context, username, email, password string) (*services.Session, error)

	Login(ctx context.Context, email, password string) (*services.Session, error)
}

// AccessGate разрешает токен в пользователя и проверяет владение.
type AccessGate interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)

	RequireOwner(user *entities.User, targetUserID string) error
}

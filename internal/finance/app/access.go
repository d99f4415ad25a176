// Package app содержит сценарии использования сервиса учета финансов.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/domain/services"
	"fintrack/internal/finance/ports/api"
	"fintrack/internal/finance/ports/repositories"
	svc "fintrack/internal/finance/ports/services"
	"fintrack/pkg/logger"
)

const (
	methodAuthenticate = "Authenticate"

	msgAuthenticating       = "authenticating request"
	msgTokenRejected        = "token rejected"
	msgIdentityNotFound     = "token refers to unknown user"
	msgAuthenticated        = "request authenticated"
	msgErrResolvingUser     = "failed to resolve user for token"
	errCtxVerifyingToken    = "verifying token"
	errCtxResolvingUser     = "resolving user"
	errCtxCheckingOwnership = "checking ownership"
)

// AccessGate проверяет токен сессии и разрешает его в пользователя.
type AccessGate struct {
	userRepo repositories.UserRepository
	tokenSvc svc.TokenService
}

var _ api.AccessGate = (*AccessGate)(nil)

// NewAccessGate создает новый экземпляр AccessGate.
func NewAccessGate(userRepo repositories.UserRepository, tokenSvc svc.TokenService) *AccessGate {
	return &AccessGate{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

// Authenticate возвращает пользователя, которому принадлежит токен. Хэш пароля не возвращается.
func (g *AccessGate) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))
	log.Debug(ctx, msgAuthenticating)

	if token == "" {
		return nil, services.ErrMissingBearerToken
	}

	userID, err := g.tokenSvc.Verify(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, err)
	}

	user, err := g.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgIdentityNotFound, zap.String("userID", userID))
			return nil, fmt.Errorf("%s: %w", errCtxResolvingUser, services.ErrIdentityNotFound)
		}
		log.Error(ctx, msgErrResolvingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxResolvingUser, err)
	}

	identity := *user
	identity.PasswordHash = ""

	log.Debug(ctx, msgAuthenticated, zap.String("userID", identity.ID))
	return &identity, nil
}

// RequireOwner проверяет, что пользователь обращается к своим данным.
func (g *AccessGate) RequireOwner(user *entities.User, targetUserID string) error {
	return RequireOwner(user, targetUserID)
}

// CanAccess - единственный предикат владения для всех записей.
func CanAccess(user *entities.User, ownerID string) bool {
	return user != nil && user.ID != "" && user.ID == ownerID
}

// RequireOwner возвращает ошибку класса AccessDenied, если CanAccess ложно.
func RequireOwner(user *entities.User, ownerID string) error {
	if !CanAccess(user, ownerID) {
		return fmt.Errorf("%s: %w", errCtxCheckingOwnership, services.ErrNotOwner)
	}
	return nil
}

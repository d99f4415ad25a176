package services

import (
	"context"
	"time"
)

// TokenService выпускает и проверяет токены сессии.
type TokenService interface {
	Issue(ctx context.Context, userID string) (string, time.Time, error)

	// Verify возвращает id пользователя или ошибку классов InvalidToken / ExpiredToken.
	Verify(ctx context.Context, token string) (string, error)
}

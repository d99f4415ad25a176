// Package repositories определяет контракт хранилища учетных данных и записей.
package repositories

import (
	"context"

	"fintrack/internal/finance/domain/entities"
)

// UserRepository - хранилище учетных данных.
type UserRepository interface {
	// Create сохраняет пользователя. Нарушение уникальности email или имени
	// возвращается как ошибка класса DuplicateIdentity.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// FindByEmailOrUsername ищет без учета регистра; возвращает nil, nil если совпадений нет.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*entities.User, error)
}

package repositories

import (
	"context"

	"fintrack/internal/finance/domain/entities"
)

// ExpenseRepository - хранилище расходов.
type ExpenseRepository interface {
	// Create назначает id и created_at и возвращает сохраненную запись.
	Create(ctx context.Context, expense *entities.Expense) (*entities.Expense, error)

	// FindByOwner возвращает расходы владельца в диапазоне, новые (по created_at) первыми.
	FindByOwner(ctx context.Context, ownerID string, filter entities.DateRange) ([]entities.Expense, error)

	// FindByID возвращает ошибку класса NotFound, если записи нет.
	FindByID(ctx context.Context, id string) (*entities.Expense, error)

	DeleteByID(ctx context.Context, id string) (bool, error)
}

// IncomeRepository - хранилище доходов.
type IncomeRepository interface {
	Create(ctx context.Context, income *entities.Income) (*entities.Income, error)

	// FindByOwner возвращает доходы владельца в диапазоне по убыванию date.
	FindByOwner(ctx context.Context, ownerID string, filter entities.DateRange) ([]entities.Income, error)

	FindByID(ctx context.Context, id string) (*entities.Income, error)

	DeleteByID(ctx context.Context, id string) (bool, error)
}

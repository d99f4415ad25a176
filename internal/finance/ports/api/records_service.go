package api

import (
	"context"

	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/domain/stats"
)

// ExpenseUseCase - жизненный цикл расходов.
type ExpenseUseCase interface {
	Create(ctx context.Context, user *entities.User, targetUserID string, in entities.ExpenseInput) (*entities.Expense, error)

	List(ctx context.Context, user *entities.User, targetUserID string) ([]entities.Expense, error)

	Delete(ctx context.Context, user *entities.User, expenseID string) error
}

// IncomeUseCase - жизненный цикл доходов.
type IncomeUseCase interface {
	Create(ctx context.Context, user *entities.User, in entities.IncomeInput) (*entities.Income, error)

	List(ctx context.Context, user *entities.User, filter entities.DateRange) ([]entities.Income, error)

	Delete(ctx context.Context, user *entities.User, incomeID string) error
}

// StatsUseCase - агрегаты по расходам владельца.
type StatsUseCase interface {
	Total(ctx context.Context, user *entities.User, targetUserID string, filter entities.DateRange) (float64, error)

	ByCategory(ctx context.Context, user *entities.User, targetUserID string, filter entities.DateRange) ([]stats.CategoryTotal, error)

	Daily(ctx context.Context, user *entities.User, targetUserID string, filter entities.DateRange) ([]stats.DailyStat, error)

	Monthly(ctx context.Context, user *entities.User, targetUserID string, year *int) ([]stats.MonthlyStat, error)

	Categories(ctx context.Context, user *entities.User, targetUserID string, filter entities.DateRange) ([]stats.CategoryStat, error)
}

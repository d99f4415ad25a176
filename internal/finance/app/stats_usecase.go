package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/domain/stats"
	"fintrack/internal/finance/ports/api"
	"fintrack/internal/finance/ports/repositories"
	"fintrack/pkg/logger"
)

// Виды статистики, они же сегменты ключа кэша.
const (
	kindTotal      = "total"
	kindByCategory = "by-category"
	kindDaily      = "daily"
	kindMonthly    = "monthly"
	kindCategories = "category"

	errCtxLoadingExpenses = "loading expenses"
)

// StatsUseCaseImpl реализует интерфейс StatsUseCase.
type StatsUseCaseImpl struct {
	repo  repositories.ExpenseRepository
	cache *StatsCache
}

var _ api.StatsUseCase = (*StatsUseCaseImpl)(nil)

// NewStatsUseCase создает новый экземпляр сценариев статистики. cache может быть nil.
func NewStatsUseCase(repo repositories.ExpenseRepository, cache *StatsCache) *StatsUseCaseImpl {
	return &StatsUseCaseImpl{
		repo:  repo,
		cache: cache,
	}
}

// Total возвращает сумму расходов владельца в диапазоне.
func (u *StatsUseCaseImpl) Total(ctx context.Context, user *entities.User, targetUserID string, filter entities.DateRange) (float64, error) {
	return compute(ctx, u, user, targetUserID, kindTotal, filter, stats.Total)
}

// ByCategory возвращает суммы по категориям.
func (u *StatsUseCaseImpl) ByCategory(
	ctx context.Context,
	user *entities.User,
	targetUserID string,
	filter entities.DateRange,
) ([]stats.CategoryTotal, error) {
	return compute(ctx, u, user, targetUserID, kindByCategory, filter, stats.ByCategory)
}

// Daily возвращает суммы по дням.
func (u *StatsUseCaseImpl) Daily(
	ctx context.Context,
	user *entities.User,
	targetUserID string,
	filter entities.DateRange,
) ([]stats.DailyStat, error) {
	return compute(ctx, u, user, targetUserID, kindDaily, filter, stats.Daily)
}

// Monthly возвращает суммы по месяцам, при заданном year только за этот год.
func (u *StatsUseCaseImpl) Monthly(ctx context.Context, user *entities.User, targetUserID string, year *int) ([]stats.MonthlyStat, error) {
	var filter entities.DateRange
	if year != nil {
		filter = entities.YearRange(*year)
	}
	return compute(ctx, u, user, targetUserID, kindMonthly, filter, stats.Monthly)
}

// Categories возвращает подробную статистику по категориям с долями.
func (u *StatsUseCaseImpl) Categories(
	ctx context.Context,
	user *entities.User,
	targetUserID string,
	filter entities.DateRange,
) ([]stats.CategoryStat, error) {
	return compute(ctx, u, user, targetUserID, kindCategories, filter, stats.Categories)
}

// compute проверяет владение, затем берет результат из кэша или считает его по расходам из хранилища.
func compute[T any](
	ctx context.Context,
	u *StatsUseCaseImpl,
	user *entities.User,
	targetUserID, kind string,
	filter entities.DateRange,
	reduce func([]entities.Expense, entities.DateRange) T,
) (T, error) {
	var zero T

	if err := RequireOwner(user, targetUserID); err != nil {
		return zero, fmt.Errorf("%s stats: %w", kind, err)
	}

	return cached(ctx, u.cache, statsKey(targetUserID, kind, filter), func() (T, error) {
		records, err := u.repo.FindByOwner(ctx, targetUserID, filter)
		if err != nil {
			logger.Log(ctx).Error(ctx, "failed to load expenses for stats",
				zap.String("kind", kind), zap.Error(err))
			return zero, fmt.Errorf("%s stats: %s: %w", kind, errCtxLoadingExpenses, err)
		}
		return reduce(records, filter), nil
	})
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/ports/api"
	"fintrack/internal/finance/ports/repositories"
	"fintrack/pkg/logger"
)

const (
	msgExpenseCreated   = "expense created"
	msgExpenseDeleted   = "expense deleted"
	msgExpenseRejected  = "expense rejected"
	msgErrCreateExpense = "failed to create expense"

	errCtxCreatingExpense = "creating expense"
	errCtxListingExpenses = "listing expenses"
	errCtxDeletingExpense = "deleting expense"
)

// ExpenseUseCaseImpl реализует интерфейс ExpenseUseCase.
type ExpenseUseCaseImpl struct {
	repo  repositories.ExpenseRepository
	stats *StatsCache
	now   func() time.Time
}

var _ api.ExpenseUseCase = (*ExpenseUseCaseImpl)(nil)

// NewExpenseUseCase создает новый экземпляр сценариев работы с расходами.
// stats может быть nil.
func NewExpenseUseCase(repo repositories.ExpenseRepository, stats *StatsCache) *ExpenseUseCaseImpl {
	return &ExpenseUseCaseImpl{
		repo:  repo,
		stats: stats,
		now:   time.Now,
	}
}

// Create сохраняет расход владельца targetUserID.
func (u *ExpenseUseCaseImpl) Create(
	ctx context.Context,
	user *entities.User,
	targetUserID string,
	in entities.ExpenseInput,
) (*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("method", "CreateExpense"))

	if err := RequireOwner(user, targetUserID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingExpense, err)
	}

	expense, err := entities.NewExpense(user.ID, in, u.now().UTC())
	if err != nil {
		log.Debug(ctx, msgExpenseRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingExpense, err)
	}

	created, err := u.repo.Create(ctx, expense)
	if err != nil {
		log.Error(ctx, msgErrCreateExpense, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingExpense, err)
	}

	u.stats.Invalidate(ctx, user.ID)

	log.Info(ctx, msgExpenseCreated, zap.String("expenseID", created.ID))
	return created, nil
}

// List возвращает расходы владельца, новые первыми.
func (u *ExpenseUseCaseImpl) List(ctx context.Context, user *entities.User, targetUserID string) ([]entities.Expense, error) {
	if err := RequireOwner(user, targetUserID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingExpenses, err)
	}

	expenses, err := u.repo.FindByOwner(ctx, targetUserID, entities.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingExpenses, err)
	}

	return expenses, nil
}

// Delete удаляет расход, если он принадлежит пользователю.
func (u *ExpenseUseCaseImpl) Delete(ctx context.Context, user *entities.User, expenseID string) error {
	log := logger.Log(ctx).With(zap.String("method", "DeleteExpense"), zap.String("expenseID", expenseID))

	if uuid.Validate(expenseID) != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingExpense, entities.ErrExpenseNotFound)
	}

	expense, err := u.repo.FindByID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingExpense, err)
	}

	if err := RequireOwner(user, expense.UserID); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingExpense, err)
	}

	deleted, err := u.repo.DeleteByID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingExpense, err)
	}
	if !deleted {
		return fmt.Errorf("%s: %w", errCtxDeletingExpense, entities.ErrExpenseNotFound)
	}

	u.stats.Invalidate(ctx, expense.UserID)

	log.Info(ctx, msgExpenseDeleted)
	return nil
}

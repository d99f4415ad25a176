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
	msgIncomeCreated   = "income created"
	msgIncomeDeleted   = "income deleted"
	msgIncomeRejected  = "income rejected"
	msgErrCreateIncome = "failed to create income"

	errCtxCreatingIncome = "creating income"
	errCtxListingIncomes = "listing incomes"
	errCtxDeletingIncome = "deleting income"
)

// IncomeUseCaseImpl реализует интерфейс IncomeUseCase.
type IncomeUseCaseImpl struct {
	repo repositories.IncomeRepository
	now  func() time.Time
}

var _ api.IncomeUseCase = (*IncomeUseCaseImpl)(nil)

// NewIncomeUseCase создает новый экземпляр сценариев работы с доходами.
func NewIncomeUseCase(repo repositories.IncomeRepository) *IncomeUseCaseImpl {
	return &IncomeUseCaseImpl{
		repo: repo,
		now:  time.Now,
	}
}

// Create сохраняет доход текущего пользователя.
func (u *IncomeUseCaseImpl) Create(ctx context.Context, user *entities.User, in entities.IncomeInput) (*entities.Income, error) {
	log := logger.Log(ctx).With(zap.String("method", "CreateIncome"))

	if user == nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingIncome, RequireOwner(user, ""))
	}

	income, err := entities.NewIncome(user.ID, in, u.now().UTC())
	if err != nil {
		log.Debug(ctx, msgIncomeRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingIncome, err)
	}

	created, err := u.repo.Create(ctx, income)
	if err != nil {
		log.Error(ctx, msgErrCreateIncome, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingIncome, err)
	}

	log.Info(ctx, msgIncomeCreated, zap.String("incomeID", created.ID))
	return created, nil
}

// List возвращает доходы пользователя в диапазоне по убыванию даты.
func (u *IncomeUseCaseImpl) List(ctx context.Context, user *entities.User, filter entities.DateRange) ([]entities.Income, error) {
	if user == nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingIncomes, RequireOwner(user, ""))
	}

	incomes, err := u.repo.FindByOwner(ctx, user.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingIncomes, err)
	}

	return incomes, nil
}

// Delete удаляет доход, если он принадлежит пользователю.
func (u *IncomeUseCaseImpl) Delete(ctx context.Context, user *entities.User, incomeID string) error {
	log := logger.Log(ctx).With(zap.String("method", "DeleteIncome"), zap.String("incomeID", incomeID))

	if uuid.Validate(incomeID) != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingIncome, entities.ErrIncomeNotFound)
	}

	income, err := u.repo.FindByID(ctx, incomeID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingIncome, err)
	}

	if err := RequireOwner(user, income.UserID); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingIncome, err)
	}

	deleted, err := u.repo.DeleteByID(ctx, incomeID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingIncome, err)
	}
	if !deleted {
		return fmt.Errorf("%s: %w", errCtxDeletingIncome, entities.ErrIncomeNotFound)
	}

	log.Info(ctx, msgIncomeDeleted)
	return nil
}

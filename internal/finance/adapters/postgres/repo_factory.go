package postgres

import (
	"fintrack/internal/finance/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo    repositories.UserRepository
	expenseRepo repositories.ExpenseRepository
	incomeRepo  repositories.IncomeRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:    NewUserRepository(pool),
		expenseRepo: NewExpenseRepository(pool),
		incomeRepo:  NewIncomeRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// ExpenseRepository возвращает репозиторий расходов.
func (f *RepositoryFactory) ExpenseRepository() repositories.ExpenseRepository {
	return f.expenseRepo
}

// IncomeRepository возвращает репозиторий доходов.
func (f *RepositoryFactory) IncomeRepository() repositories.IncomeRepository {
	return f.incomeRepo
}

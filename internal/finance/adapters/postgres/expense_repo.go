package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/ports/repositories"
	"fintrack/pkg/logger"
)

const (
	expenseColumns = `id, user_id, category, amount, note, date, type, created_at`

	errCtxCreateExpense     = "error creating expense"
	errCtxFindExpenses      = "error querying expenses"
	errCtxScanExpense       = "error scanning expense"
	errCtxFindExpenseByID   = "error querying expense by id"
	errCtxDeleteExpenseByID = "error deleting expense"
)

// ExpenseRepository реализует интерфейс repositories.ExpenseRepository для работы с Postgres.
type ExpenseRepository struct {
	pool PgxPoolInterface
}

// NewExpenseRepository создает новый экземпляр репозитория расходов.
func NewExpenseRepository(pool PgxPoolInterface) repositories.ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

func scanExpense(row pgx.Row) (*entities.Expense, error) {
	var (
		expense    entities.Expense
		category   string
		recordType string
	)
	if err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&category,
		&expense.Amount,
		&expense.Note,
		&expense.Date,
		&recordType,
		&expense.CreatedAt,
	); err != nil {
		return nil, err
	}

	expense.Category = entities.ExpenseCategory(category)
	expense.Type = entities.RecordType(recordType)
	expense.Date = expense.Date.UTC()
	expense.CreatedAt = expense.CreatedAt.UTC()
	return &expense, nil
}

// Create сохраняет расход.
func (r *ExpenseRepository) Create(ctx context.Context, expense *entities.Expense) (*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "Create"))

	query := `
        INSERT INTO expenses (user_id, category, amount, note, date, type, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + expenseColumns

	created, err := scanExpense(r.pool.QueryRow(ctx, query,
		expense.UserID,
		string(expense.Category),
		expense.Amount,
		expense.Note,
		expense.Date.UTC(),
		string(expense.Type),
		expense.CreatedAt.UTC(),
	))
	if err != nil {
		log.Error(ctx, "error creating expense", zap.Error(err))
		return nil, storageError(errCtxCreateExpense, err)
	}

	return created, nil
}

// FindByOwner возвращает расходы владельца в диапазоне дат, новые первыми.
func (r *ExpenseRepository) FindByOwner(ctx context.Context, ownerID string, filter entities.DateRange) ([]entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "FindByOwner"))

	query := `
        SELECT ` + expenseColumns + `
        FROM expenses
        WHERE user_id = $1
          AND ($2::timestamptz IS NULL OR date >= $2)
          AND ($3::timestamptz IS NULL OR date <= $3)
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, ownerID, filter.Start, filter.End)
	if err != nil {
		log.Error(ctx, "error querying expenses", zap.Error(err))
		return nil, storageError(errCtxFindExpenses, err)
	}
	defer rows.Close()

	expenses := make([]entities.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			log.Error(ctx, "error scanning expense", zap.Error(err))
			return nil, storageError(errCtxScanExpense, err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating expenses", zap.Error(err))
		return nil, storageError(errCtxFindExpenses, err)
	}

	log.Debug(ctx, "expenses found", zap.Int("count", len(expenses)))
	return expenses, nil
}

// FindByID находит расход по ID.
func (r *ExpenseRepository) FindByID(ctx context.Context, id string) (*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + expenseColumns + `
        FROM expenses
        WHERE id = $1
    `

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "expense not found", zap.String("id", id))
			return nil, entities.ErrExpenseNotFound
		}
		log.Error(ctx, "error finding expense by id", zap.Error(err))
		return nil, storageError(errCtxFindExpenseByID, err)
	}

	return expense, nil
}

// DeleteByID удаляет расход и сообщает, существовал ли он.
func (r *ExpenseRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "DeleteByID"))

	query := `
        DELETE FROM expenses
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting expense", zap.Error(err))
		return false, storageError(errCtxDeleteExpenseByID, err)
	}

	return result.RowsAffected() > 0, nil
}

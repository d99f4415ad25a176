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
	incomeColumns = `id, user_id, title, amount, category, date, created_at`

	errCtxCreateIncome     = "error creating income"
	errCtxFindIncomes      = "error querying incomes"
	errCtxScanIncome       = "error scanning income"
	errCtxFindIncomeByID   = "error querying income by id"
	errCtxDeleteIncomeByID = "error deleting income"
)

// IncomeRepository реализует интерфейс repositories.IncomeRepository для работы с Postgres.
type IncomeRepository struct {
	pool PgxPoolInterface
}

// NewIncomeRepository создает новый экземпляр репозитория доходов.
func NewIncomeRepository(pool PgxPoolInterface) repositories.IncomeRepository {
	return &IncomeRepository{pool: pool}
}

func scanIncome(row pgx.Row) (*entities.Income, error) {
	var (
		income   entities.Income
		category string
	)
	if err := row.Scan(
		&income.ID,
		&income.UserID,
		&income.Title,
		&income.Amount,
		&category,
		&income.Date,
		&income.CreatedAt,
	); err != nil {
		return nil, err
	}

	income.Category = entities.IncomeCategory(category)
	income.Date = income.Date.UTC()
	income.CreatedAt = income.CreatedAt.UTC()
	return &income, nil
}

// Create сохраняет доход.
func (r *IncomeRepository) Create(ctx context.Context, income *entities.Income) (*entities.Income, error) {
	log := logger.Log(ctx).With(zap.String("repository", "income"), zap.String("method", "Create"))

	query := `
        INSERT INTO incomes (user_id, title, amount, category, date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + incomeColumns

	created, err := scanIncome(r.pool.QueryRow(ctx, query,
		income.UserID,
		income.Title,
		income.Amount,
		string(income.Category),
		income.Date.UTC(),
		income.CreatedAt.UTC(),
	))
	if err != nil {
		log.Error(ctx, "error creating income", zap.Error(err))
		return nil, storageError(errCtxCreateIncome, err)
	}

	return created, nil
}

// FindByOwner возвращает доходы владельца в диапазоне дат по убыванию даты.
func (r *IncomeRepository) FindByOwner(ctx context.Context, ownerID string, filter entities.DateRange) ([]entities.Income, error) {
	log := logger.Log(ctx).With(zap.String("repository", "income"), zap.String("method", "FindByOwner"))

	query := `
        SELECT ` + incomeColumns + `
        FROM incomes
        WHERE user_id = $1
          AND ($2::timestamptz IS NULL OR date >= $2)
          AND ($3::timestamptz IS NULL OR date <= $3)
        ORDER BY date DESC, created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, ownerID, filter.Start, filter.End)
	if err != nil {
		log.Error(ctx, "error querying incomes", zap.Error(err))
		return nil, storageError(errCtxFindIncomes, err)
	}
	defer rows.Close()

	incomes := make([]entities.Income, 0)
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			log.Error(ctx, "error scanning income", zap.Error(err))
			return nil, storageError(errCtxScanIncome, err)
		}
		incomes = append(incomes, *income)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating incomes", zap.Error(err))
		return nil, storageError(errCtxFindIncomes, err)
	}

	log.Debug(ctx, "incomes found", zap.Int("count", len(incomes)))
	return incomes, nil
}

// FindByID находит доход по ID.
func (r *IncomeRepository) FindByID(ctx context.Context, id string) (*entities.Income, error) {
	log := logger.Log(ctx).With(zap.String("repository", "income"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + incomeColumns + `
        FROM incomes
        WHERE id = $1
    `

	income, err := scanIncome(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "income not found", zap.String("id", id))
			return nil, entities.ErrIncomeNotFound
		}
		log.Error(ctx, "error finding income by id", zap.Error(err))
		return nil, storageError(errCtxFindIncomeByID, err)
	}

	return income, nil
}

// DeleteByID удаляет доход и сообщает, существовал ли он.
func (r *IncomeRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "income"), zap.String("method", "DeleteByID"))

	query := `
        DELETE FROM incomes
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting income", zap.Error(err))
		return false, storageError(errCtxDeleteIncomeByID, err)
	}

	return result.RowsAffected() > 0, nil
}

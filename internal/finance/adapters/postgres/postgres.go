// Package postgres реализует хранилища пользователей, расходов и доходов на PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fintrack/internal/finance/domain/apperr"
)

// Коды ошибок PostgreSQL.
const (
	pgUniqueViolation = "23505"
)

// Имена уникальных индексов таблицы users.
const (
	constraintUsersEmail    = "users_email_lower_idx"
	constraintUsersUsername = "users_username_lower_idx"
)

// PgxPoolInterface - подмножество методов пула, которое используют репозитории.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// storageError оборачивает ошибку драйвера в apperr.ErrStorage.
func storageError(errCtx string, err error) error {
	return fmt.Errorf("%s: %w: %w", errCtx, apperr.ErrStorage, err)
}

// uniqueViolation возвращает имя нарушенного ограничения уникальности.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

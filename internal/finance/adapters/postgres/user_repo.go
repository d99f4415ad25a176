package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/ports/repositories"
	"fintrack/pkg/logger"
)

const (
	userColumns = `id, username, email, password_hash, created_at`

	errCtxCreateUser      = "error creating user"
	errCtxFindUserByID    = "error querying user by id"
	errCtxFindUserByEmail = "error querying user by email"
	errCtxFindUserByIdent = "error querying user by email or username"
)

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, storageError(errCtxFindUserByID, err)
	}

	return user, nil
}

// FindByEmail находит пользователя по email без учета регистра.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE lower(email) = lower($1)
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, storageError(errCtxFindUserByEmail, err)
	}

	return user, nil
}

// FindByEmailOrUsername ищет пользователя с таким же email или именем.
func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmailOrUsername"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE lower(email) = lower($1) OR lower(username) = lower($2)
        LIMIT 1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, email, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		log.Error(ctx, "error finding user by email or username", zap.Error(err))
		return nil, storageError(errCtxFindUserByIdent, err)
	}

	return user, nil
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (username, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
	))
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			log.Debug(ctx, "duplicate user", zap.String("constraint", constraint))
			switch constraint {
			case constraintUsersEmail:
				return nil, fmt.Errorf("%s: %w", errCtxCreateUser, entities.ErrEmailTaken)
			case constraintUsersUsername:
				return nil, fmt.Errorf("%s: %w", errCtxCreateUser, entities.ErrUsernameTaken)
			default:
				return nil, fmt.Errorf("%s: %w: %w", errCtxCreateUser, apperr.ErrDuplicateIdentity, err)
			}
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, storageError(errCtxCreateUser, err)
	}

	return created, nil
}

// Package db инициализирует хранилище сервиса: миграции и пул соединений.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"fintrack/internal/finance/config"
	"fintrack/pkg/db/postgres"
	"fintrack/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing finance database"
	LogDBInitialized     = "finance database initialized successfully"
	LogMigrationStarting = "starting database migrations"
	LogMigrationSkipped  = "database migrations disabled"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply finance database migrations"
	ErrDBConnection = "failed to connect to finance database"
	ErrGetPath      = "failed to get path"
)

// DB представляет соединение с базой данных сервиса.
type DB struct {
	database *postgres.Database
}

// MigrationsURL возвращает file:// URL каталога миграций.
func MigrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + filepath.ToSlash(dir), nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + filepath.ToSlash(absPath), nil
}

// New применяет миграции (если включены) и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig, migrations *config.MigrationsConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	if migrations.Enabled {
		migrationsPath, err := MigrationsURL(migrations.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
		}

		log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
		if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
		}
	} else {
		log.Info(ctx, LogMigrationSkipped)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{
		database: database,
	}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}

// Package cache определяет интерфейс кэша статистики.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс для работы с кэшем.
type Cache interface {
	// Get возвращает "", false, nil при промахе.
	Get(ctx context.Context, key string) (string, bool, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	DeletePrefix(ctx context.Context, prefix string) error

	Close() error
}

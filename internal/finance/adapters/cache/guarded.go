package cache

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/finance/ports/cache"
	"fintrack/internal/finance/resilience"
)

// GuardedCache защищает кэш Circuit Breaker: пока он открыт, чтение
// возвращает промах, а запись пропускается без обращения к Redis.
type GuardedCache struct {
	inner   cache.Cache
	breaker *resilience.CircuitBreaker
}

var _ cache.Cache = (*GuardedCache)(nil)

// NewGuardedCache создает кэш, защищенный breaker.
func NewGuardedCache(inner cache.Cache, breaker *resilience.CircuitBreaker) *GuardedCache {
	return &GuardedCache{inner: inner, breaker: breaker}
}

// Get возвращает значение по ключу.
func (g *GuardedCache) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := g.breaker.Execute(ctx, func() error {
		var err error
		value, found, err = g.inner.Get(ctx, key)
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return "", false, nil
	}
	return value, found, err
}

// Set сохраняет значение.
func (g *GuardedCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	err := g.breaker.Execute(ctx, func() error {
		return g.inner.Set(ctx, key, value, ttl)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil
	}
	return err
}

// DeletePrefix выполняется всегда, даже при открытом breaker: пропущенная
// инвалидация оставила бы устаревшую статистику после восстановления Redis.
func (g *GuardedCache) DeletePrefix(ctx context.Context, prefix string) error {
	err := g.inner.DeletePrefix(ctx, prefix)
	g.breaker.RecordResult(ctx, err)
	return err
}

// Close закрывает внутренний кэш.
func (g *GuardedCache) Close() error {
	return g.inner.Close()
}

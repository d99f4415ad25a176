package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/ports/cache"
	"fintrack/pkg/logger"
)

const (
	statsKeyPrefix = "stats"
	openBound      = "-"

	msgCacheHit         = "stats cache hit"
	msgCacheReadFailed  = "stats cache read failed"
	msgCacheWriteFailed = "stats cache write failed"
	msgCacheDecodeFail  = "stats cache entry is corrupted"
	msgCacheInvalidated = "stats cache invalidated"
	msgCacheInvalidFail = "stats cache invalidation failed"
)

// StatsCache хранит вычисленную статистику в кэше. Ошибки кэша
// логируются и не возвращаются: источником истины остается хранилище.
// Нулевой cache отключает кэширование.
type StatsCache struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewStatsCache создает StatsCache. c может быть nil.
func NewStatsCache(c cache.Cache, ttl time.Duration) *StatsCache {
	return &StatsCache{cache: c, ttl: ttl}
}

func (s *StatsCache) enabled() bool {
	return s != nil && s.cache != nil
}

// Invalidate удаляет всю кэшированную статистику пользователя.
func (s *StatsCache) Invalidate(ctx context.Context, userID string) {
	if !s.enabled() {
		return
	}
	log := logger.Log(ctx).With(zap.String("userID", userID))

	if err := s.cache.DeletePrefix(ctx, userPrefix(userID)); err != nil {
		log.Warn(ctx, msgCacheInvalidFail, zap.Error(err))
		return
	}
	log.Debug(ctx, msgCacheInvalidated)
}

func userPrefix(userID string) string {
	return fmt.Sprintf("%s:%s:", statsKeyPrefix, userID)
}

// statsKey строит ключ вида stats:{userID}:{kind}:{start}_{end}.
func statsKey(userID, kind string, filter entities.DateRange) string {
	return userPrefix(userID) + kind + ":" + boundKey(filter.Start) + "_" + boundKey(filter.End)
}

func boundKey(t *time.Time) string {
	if t == nil {
		return openBound
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// cached возвращает значение из кэша или вычисляет и сохраняет его.
func cached[T any](ctx context.Context, s *StatsCache, key string, compute func() (T, error)) (T, error) {
	if !s.enabled() {
		return compute()
	}
	log := logger.Log(ctx).With(zap.String("key", key))

	raw, found, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn(ctx, msgCacheReadFailed, zap.Error(err))
	case found:
		var value T
		if err := json.Unmarshal([]byte(raw), &value); err == nil {
			log.Debug(ctx, msgCacheHit)
			return value, nil
		}
		log.Warn(ctx, msgCacheDecodeFail)
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Warn(ctx, msgCacheWriteFailed, zap.Error(err))
		return value, nil
	}
	if err := s.cache.Set(ctx, key, string(encoded), s.ttl); err != nil {
		log.Warn(ctx, msgCacheWriteFailed, zap.Error(err))
	}

	return value, nil
}

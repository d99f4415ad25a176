package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/finance/adapters/cache"
	"fintrack/internal/finance/config"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *cache.RedisCache) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		PoolSize:       5,
		DefaultTTL:     time.Minute,
	}

	redisCache, err := cache.NewRedisCache(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	return s, redisCache
}

func TestNewRedisCache_ConnectionFailure(t *testing.T) {
	cfg := &config.RedisConfig{
		Host:           "127.0.0.1",
		Port:           1,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	}

	redisCache, err := cache.NewRedisCache(context.Background(), cfg)

	require.Error(t, err)
	assert.Nil(t, redisCache)
	assert.Contains(t, err.Error(), cache.ErrorFailedToConnect)
}

func TestRedisCache_GetSet(t *testing.T) {
	s, redisCache := newTestCache(t)
	ctx := context.Background()

	value, found, err := redisCache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found, "missing key should be a miss")
	assert.Empty(t, value)

	require.NoError(t, redisCache.Set(ctx, "stats:u1:total:all", "42", 0))

	value, found, err = redisCache.Get(ctx, "stats:u1:total:all")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "42", value)

	assert.Equal(t, time.Minute, s.TTL("stats:u1:total:all"), "zero ttl should use default")

	require.NoError(t, redisCache.Set(ctx, "stats:u1:daily:all", "[]", 10*time.Second))
	assert.Equal(t, 10*time.Second, s.TTL("stats:u1:daily:all"))

	s.FastForward(11 * time.Second)
	_, found, err = redisCache.Get(ctx, "stats:u1:daily:all")
	require.NoError(t, err)
	assert.False(t, found, "expired key should be a miss")
}

func TestRedisCache_DeletePrefix(t *testing.T) {
	s, redisCache := newTestCache(t)
	ctx := context.Background()

	for i := range 250 {
		require.NoError(t, s.Set("stats:u1:daily:"+strconv.Itoa(i), "x"))
	}
	require.NoError(t, s.Set("stats:u2:daily:all", "y"))

	require.NoError(t, redisCache.DeletePrefix(ctx, "stats:u1:"))

	assert.Equal(t, []string{"stats:u2:daily:all"}, s.Keys())
}

func TestRedisCache_DeletePrefixBatches(t *testing.T) {
	s, redisCache := newTestCache(t)
	ctx := context.Background()

	t.Run("больше одной пачки DEL", func(t *testing.T) {
		for i := range 1000 {
			require.NoError(t, s.Set("stats:u3:total:"+strconv.Itoa(i), "1"))
		}

		require.NoError(t, redisCache.DeletePrefix(ctx, "stats:u3:"))

		assert.Empty(t, s.Keys())
	})

	t.Run("нет совпадений", func(t *testing.T) {
		require.NoError(t, s.Set("stats:u4:daily:all", "[]"))

		require.NoError(t, redisCache.DeletePrefix(ctx, "stats:u5:"))

		assert.Equal(t, []string{"stats:u4:daily:all"}, s.Keys())
	})
}

func TestRedisCache_ErrorsAfterServerStops(t *testing.T) {
	s, redisCache := newTestCache(t)
	ctx := context.Background()

	s.Close()

	_, _, err := redisCache.Get(ctx, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), cache.ErrorFailedToGet)

	err = redisCache.Set(ctx, "key", "value", 0)
	require.Error(t, err)

	err = redisCache.DeletePrefix(ctx, "stats:")
	require.Error(t, err)
}

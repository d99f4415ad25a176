package config

import (
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию кэша статистики.
type RedisConfig struct {
	Enabled         bool          `yaml:"enabled" env:"FINTRACK_REDIS_ENABLED" env-default:"false"`
	Host            string        `yaml:"host" env:"FINTRACK_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"FINTRACK_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"FINTRACK_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"FINTRACK_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"FINTRACK_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"FINTRACK_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"FINTRACK_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"FINTRACK_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"FINTRACK_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"FINTRACK_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"FINTRACK_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	DefaultTTL      time.Duration `yaml:"default_ttl" env:"FINTRACK_REDIS_DEFAULT_TTL" env-default:"5m"`

	BreakerThreshold int           `yaml:"breaker_threshold" env:"FINTRACK_REDIS_BREAKER_THRESHOLD" env-default:"5"`
	BreakerTimeout   time.Duration `yaml:"breaker_timeout" env:"FINTRACK_REDIS_BREAKER_TIMEOUT" env-default:"30s"`
}

// GetAddressString возвращает адрес Redis строкой.
func (c *RedisConfig) GetAddressString() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

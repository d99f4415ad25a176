package config

import (
	"fmt"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"FINTRACK_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"FINTRACK_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"FINTRACK_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"FINTRACK_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"FINTRACK_POSTGRES_DB" env-default:"fintrack"`
	SSLMode  string `yaml:"ssl_mode" env:"FINTRACK_POSTGRES_SSLMODE" env-default:"disable"`
	MinConn  int    `yaml:"min_conn" env:"FINTRACK_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"FINTRACK_POSTGRES_MAX_CONN" env-default:"10"`
}

// MigrationsConfig - настройки применения миграций при старте.
type MigrationsConfig struct {
	Path    string `yaml:"path" env:"FINTRACK_MIGRATIONS_PATH" env-default:"migrations/finance"`
	Enabled bool   `yaml:"enabled" env:"FINTRACK_MIGRATIONS_ENABLED" env-default:"true"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

package config

import "time"

// JWTConfig содержит настройки токенов сессии и хэширования паролей.
type JWTConfig struct {
	SecretKey  string        `yaml:"secret_key" env:"FINTRACK_JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"FINTRACK_JWT_TOKEN_TTL" env-default:"168h"`
	BCryptCost int           `yaml:"bcrypt_cost" env:"FINTRACK_BCRYPT_COST" env-default:"12"`
}

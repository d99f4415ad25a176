package services

import (
	"errors"
)

// Ошибки, связанные с паролями.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// Стоимость bcrypt: не ниже MinBcryptCost, по умолчанию DefaultBcryptCost.
const (
	MinBcryptCost     = 10
	DefaultBcryptCost = 12
)

// Package entities содержит доменные сущности: пользователей, расходы и доходы.
package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"

	"fintrack/internal/finance/domain/apperr"
)

// Ограничения учетных данных.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
	// MaxPasswordLength - предел bcrypt в байтах.
	MaxPasswordLength = 72
)

// Ошибки домена пользователя.
var (
	ErrUsernameTooShort = fmt.Errorf("username must be at least %d characters: %w", MinUsernameLength, apperr.ErrInvalidInput)
	ErrInvalidEmail     = fmt.Errorf("please enter a valid email: %w", apperr.ErrInvalidInput)
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, apperr.ErrInvalidInput)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d bytes: %w", MaxPasswordLength, apperr.ErrInvalidInput)
	ErrUserNotFound     = fmt.Errorf("user not found: %w", apperr.ErrNotFound)
	ErrEmailTaken       = fmt.Errorf("email already registered: %w", apperr.ErrDuplicateIdentity)
	ErrUsernameTaken    = fmt.Errorf("username already taken: %w", apperr.ErrDuplicateIdentity)
)

// User - зарегистрированный пользователь. После регистрации не изменяется.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Credentials - нормализованные данные регистрации.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// NormalizeEmail приводит email к форме, в которой он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewCredentials проверяет и нормализует данные регистрации.
func NewCredentials(username, email, password string) (Credentials, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	var errs []error
	if len([]rune(username)) < MinUsernameLength {
		errs = append(errs, ErrUsernameTooShort)
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		errs = append(errs, ErrInvalidEmail)
	}
	switch {
	case len(password) < MinPasswordLength:
		errs = append(errs, ErrPasswordTooShort)
	case len(password) > MaxPasswordLength:
		errs = append(errs, ErrPasswordTooLong)
	}
	if len(errs) > 0 {
		return Credentials{}, errors.Join(errs...)
	}

	return Credentials{Username: username, Email: email, Password: password}, nil
}

// SameUsername сравнивает имена пользователей без учета регистра.
func SameUsername(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

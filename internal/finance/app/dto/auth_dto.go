// Package dto содержит объекты передачи данных HTTP API.
package dto

import (
	"time"

	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse - публичное представление пользователя.
type UserResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// AuthResponse возвращается при регистрации и входе.
type AuthResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ProfileResponse возвращает текущего пользователя.
type ProfileResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// NewUserResponse преобразует пользователя в ответ без хэша пароля.
func NewUserResponse(user *entities.User) UserResponse {
	resp := UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	if !user.CreatedAt.IsZero() {
		createdAt := user.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

// NewAuthResponse собирает ответ из сессии.
func NewAuthResponse(message string, session *services.Session) AuthResponse {
	return AuthResponse{
		Success:   true,
		Message:   message,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      NewUserResponse(session.User),
	}
}

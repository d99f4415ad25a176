// Package auth содержит HTTP обработчики регистрации, входа и профиля.
package auth

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"fintrack/internal/finance/adapters/http/response"
	"fintrack/internal/finance/app/dto"
	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/ports/api"
	"fintrack/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerGetProfile = "auth handler: get profile"

	MessageRegistered = "Registration successful"
	MessageLoggedIn   = "Login successful"
)

// ErrInvalidRequestBody возвращается для тела запроса, которое не удалось разобрать.
var ErrInvalidRequestBody = fmt.Errorf("invalid request body: %w", apperr.ErrInvalidInput)

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
	responder   response.Responder
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase, responder response.Responder) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		responder:   responder,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return h.responder.Error(ctx, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
	}

	session, err := h.authUseCase.Register(requestCtx, req.Username, req.Email, req.Password)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	log.Info(requestCtx, "user registered", zap.String("user_id", session.User.ID))
	return response.JSON(ctx, http.StatusCreated, dto.NewAuthResponse(MessageRegistered, session))
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return h.responder.Error(ctx, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
	}

	session, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	log.Info(requestCtx, "user logged in", zap.String("user_id", session.User.ID))
	return response.JSON(ctx, http.StatusOK, dto.NewAuthResponse(MessageLoggedIn, session))
}

// Me возвращает пользователя, которому принадлежит токен.
func (h *Handler) Me(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetProfile)

	user, err := response.User(ctx)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusOK, dto.ProfileResponse{
		Success: true,
		User:    dto.NewUserResponse(user),
	})
}

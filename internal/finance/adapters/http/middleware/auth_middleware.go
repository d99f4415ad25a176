package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"fintrack/internal/finance/adapters/http/response"
	"fintrack/internal/finance/ports/api"
	"fintrack/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	bearerPrefix = "Bearer "
)

// BearerToken извлекает токен из заголовка Authorization. Заголовок без
// префикса Bearer считается отсутствующим токеном.
func BearerToken(header string) string {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// NewAuthMiddleware создает промежуточное ПО, которое разрешает bearer токен
// в пользователя и сохраняет его в контексте запроса.
func NewAuthMiddleware(gate api.AccessGate, responder response.Responder) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := response.RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		user, err := gate.Authenticate(requestCtx, BearerToken(ctx.Get(fiber.HeaderAuthorization)))
		if err != nil {
			return responder.Error(ctx, err)
		}

		response.SetUser(ctx, user)
		response.SetRequestContext(ctx, logger.NewUserIDContext(requestCtx, user.ID))

		return ctx.Next()
	}
}

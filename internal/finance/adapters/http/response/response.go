// Package response преобразует ошибки домена в HTTP ответы и хранит
// данные запроса в fiber.Ctx.
package response

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"fintrack/internal/finance/app/dto"
	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/domain/entities"
	"fintrack/pkg/logger"
)

// Ключи fiber.Locals.
const (
	localsRequestContext = "requestContext"
	localsUser           = "user"
)

// ErrorServerError - сообщение для неклассифицированных ошибок.
const ErrorServerError = "server error occurred"

// ErrNoUser возвращается, если обработчик вызван без middleware аутентификации.
var ErrNoUser = fmt.Errorf("user is not resolved: %w", apperr.ErrUnauthenticated)

var statusByKind = map[apperr.Kind]int{
	apperr.KindInvalidInput:      http.StatusBadRequest,
	apperr.KindUnauthenticated:   http.StatusUnauthorized,
	apperr.KindInvalidToken:      http.StatusUnauthorized,
	apperr.KindExpiredToken:      http.StatusUnauthorized,
	apperr.KindUnknownIdentity:   http.StatusUnauthorized,
	apperr.KindAccessDenied:      http.StatusForbidden,
	apperr.KindNotFound:          http.StatusNotFound,
	apperr.KindDuplicateIdentity: http.StatusConflict,
	apperr.KindStorage:           http.StatusInternalServerError,
	apperr.KindInternal:          http.StatusInternalServerError,
}

// StatusOf возвращает HTTP статус для ошибки.
func StatusOf(err error) int {
	if status, ok := statusByKind[apperr.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Responder отправляет ответы с ошибками. В режиме Debug в ответ
// добавляется полный текст ошибки.
type Responder struct {
	Debug bool
}

// Error отправляет ошибку клиенту в формате dto.ErrorResponse.
func (r Responder) Error(ctx fiber.Ctx, err error) error {
	requestCtx := RequestContext(ctx)
	kind := apperr.KindOf(err)
	status := StatusOf(err)

	body := dto.ErrorResponse{
		Success: false,
		Kind:    string(kind),
		Message: apperr.Message(err),
	}

	if status >= http.StatusInternalServerError {
		logger.Log(requestCtx).Error(requestCtx, "request failed", zap.Error(err))
		body.Message = ErrorServerError
	} else {
		logger.Log(requestCtx).Debug(requestCtx, "request rejected",
			zap.String("kind", string(kind)), zap.Error(err))
	}

	if r.Debug {
		body.Debug = err.Error()
	}

	if sendErr := ctx.Status(status).JSON(body); sendErr != nil {
		return fmt.Errorf("error sending error response: %w", sendErr)
	}
	return nil
}

// ErrorHandler - обработчик ошибок fiber для ошибок, не обработанных в хендлерах.
func (r Responder) ErrorHandler(ctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(dto.ErrorResponse{
			Success: false,
			Kind:    kindForStatus(fiberErr.Code),
			Message: fiberErr.Message,
		})
	}
	return r.Error(ctx, err)
}

func kindForStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return string(apperr.KindNotFound)
	case status >= http.StatusInternalServerError:
		return string(apperr.KindInternal)
	default:
		return string(apperr.KindInvalidInput)
	}
}

// JSON отправляет успешный ответ.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// SetRequestContext сохраняет контекст запроса (логгер, request id).
func SetRequestContext(ctx fiber.Ctx, requestCtx context.Context) {
	ctx.Locals(localsRequestContext, requestCtx)
}

// RequestContext возвращает контекст, сохраненный middleware, или контекст fiber.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(localsRequestContext).(context.Context); ok && requestCtx != nil {
		return requestCtx
	}
	return ctx.Context()
}

// SetUser сохраняет аутентифицированного пользователя.
func SetUser(ctx fiber.Ctx, user *entities.User) {
	ctx.Locals(localsUser, user)
}

// User возвращает аутентифицированного пользователя.
func User(ctx fiber.Ctx) (*entities.User, error) {
	user, ok := ctx.Locals(localsUser).(*entities.User)
	if !ok || user == nil {
		return nil, ErrNoUser
	}
	return user, nil
}

// Package health содержит обработчики проверки состояния и информации об API.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"fintrack/internal/finance/adapters/http/response"
	"fintrack/pkg/logger"
)

// Состояния зависимостей.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	APIName    = "Expense Tracker API"
	APIVersion = "1.0.0"

	pingTimeout = 2 * time.Second
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Response - ответ проверки состояния.
type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// InfoResponse - описание API.
type InfoResponse struct {
	Message     string            `json:"message"`
	Version     string            `json:"version"`
	Environment map[string]string `json:"environment"`
	Endpoints   map[string]string `json:"endpoints"`
}

// Handler содержит обработчики состояния сервиса.
type Handler struct {
	db Pinger
}

// NewHandler создает новый экземпляр обработчика состояния.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

func (h *Handler) databaseStatus(ctx context.Context) string {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.db.Ping(pingCtx); err != nil {
		logger.Log(ctx).Warn(ctx, "database ping failed", zap.Error(err))
		return StatusUnavailable
	}
	return StatusOK
}

// Health проверяет соединение с базой данных.
func (h *Handler) Health(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)

	dbStatus := h.databaseStatus(requestCtx)
	if dbStatus != StatusOK {
		return response.JSON(ctx, http.StatusServiceUnavailable, Response{Status: dbStatus, Database: dbStatus})
	}
	return response.JSON(ctx, http.StatusOK, Response{Status: StatusOK, Database: dbStatus})
}

// Info возвращает описание API и состояние базы данных.
func (h *Handler) Info(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)

	return response.JSON(ctx, http.StatusOK, InfoResponse{
		Message: APIName,
		Version: APIVersion,
		Environment: map[string]string{
			"database": h.databaseStatus(requestCtx),
		},
		Endpoints: map[string]string{
			"auth":    "/auth",
			"amounts": "/users/:id/amounts",
			"profits": "/profits",
			"stats":   "/users/:id/stats",
			"health":  "/health",
		},
	})
}

// Package stats содержит HTTP обработчики статистики расходов.
package stats

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"fintrack/internal/finance/adapters/http/response"
	"fintrack/internal/finance/app/dto"
	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/ports/api"
	"fintrack/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerStats = "stats handler"

	minYear = 1
	maxYear = 9999
)

// ErrInvalidYear возвращается для параметра year вне диапазона или не числа.
var ErrInvalidYear = fmt.Errorf("year must be an integer between %d and %d: %w", minYear, maxYear, apperr.ErrInvalidInput)

// Handler содержит HTTP обработчики статистики.
type Handler struct {
	stats     api.StatsUseCase
	responder response.Responder
}

// NewHandler создает новый экземпляр обработчика статистики.
func NewHandler(stats api.StatsUseCase, responder response.Responder) *Handler {
	return &Handler{
		stats:     stats,
		responder: responder,
	}
}

// ParseYear разбирает необязательный параметр year.
func ParseYear(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(value)
	if err != nil || year < minYear || year > maxYear {
		return nil, fmt.Errorf("%w: %q", ErrInvalidYear, value)
	}
	return &year, nil
}

type rangedQuery[T any] func(requestCtx context.Context, user *entities.User, targetUserID string, filter entities.DateRange) (T, error)

func serveRanged[T any](h *Handler, ctx fiber.Ctx, kind string, query rangedQuery[T]) error {
	requestCtx := response.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerStats+": "+kind)

	user, err := response.User(ctx)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	filter, err := dto.ParseRange(ctx.Query("startDate"), ctx.Query("endDate"))
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	result, err := query(requestCtx, user, ctx.Params("id"), filter)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusOK, result)
}

// Total возвращает сумму расходов.
func (h *Handler) Total(ctx fiber.Ctx) error {
	return serveRanged(h, ctx, "total", func(requestCtx context.Context, user *entities.User, targetUserID string, filter entities.DateRange) (dto.TotalResponse, error) {
		total, err := h.stats.Total(requestCtx, user, targetUserID, filter)
		return dto.TotalResponse{Total: total}, err
	})
}

// ByCategory возвращает суммы по категориям.
func (h *Handler) ByCategory(ctx fiber.Ctx) error {
	return serveRanged(h, ctx, "by-category", func(requestCtx context.Context, user *entities.User, targetUserID string, filter entities.DateRange) (any, error) {
		return h.stats.ByCategory(requestCtx, user, targetUserID, filter)
	})
}

// Daily возвращает статистику по дням.
func (h *Handler) Daily(ctx fiber.Ctx) error {
	return serveRanged(h, ctx, "daily", func(requestCtx context.Context, user *entities.User, targetUserID string, filter entities.DateRange) (any, error) {
		return h.stats.Daily(requestCtx, user, targetUserID, filter)
	})
}

// Categories возвращает статистику по категориям с долями.
func (h *Handler) Categories(ctx fiber.Ctx) error {
	return serveRanged(h, ctx, "category", func(requestCtx context.Context, user *entities.User, targetUserID string, filter entities.DateRange) (any, error) {
		return h.stats.Categories(requestCtx, user, targetUserID, filter)
	})
}

// Monthly возвращает статистику по месяцам, при наличии year только за этот год.
func (h *Handler) Monthly(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerStats+": monthly")

	user, err := response.User(ctx)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	year, err := ParseYear(ctx.Query("year"))
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	result, err := h.stats.Monthly(requestCtx, user, ctx.Params("id"), year)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusOK, result)
}

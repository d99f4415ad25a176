// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"fintrack/internal/finance/adapters/http/auth"
	"fintrack/internal/finance/adapters/http/health"
	"fintrack/internal/finance/adapters/http/middleware"
	"fintrack/internal/finance/adapters/http/records"
	"fintrack/internal/finance/adapters/http/response"
	"fintrack/internal/finance/adapters/http/stats"
	"fintrack/internal/finance/app/dto"
	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/ports/api"
)

// ErrorRouteNotFound - сообщение для несуществующих маршрутов.
const ErrorRouteNotFound = "route not found"

// Dependencies содержит сценарии использования, которые обслуживает роутер.
type Dependencies struct {
	Auth     api.AuthUseCase
	Gate     api.AccessGate
	Expenses api.ExpenseUseCase
	Incomes  api.IncomeUseCase
	Stats    api.StatsUseCase
	DB       health.Pinger
	Debug    bool
}

// NewApp создает fiber приложение с обработчиком ошибок в формате API.
func NewApp(cfg fiber.Config, debug bool) *fiber.App {
	cfg.ErrorHandler = response.Responder{Debug: debug}.ErrorHandler
	return fiber.New(cfg)
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	responder := response.Responder{Debug: deps.Debug}

	authHandler := auth.NewHandler(deps.Auth, responder)
	recordsHandler := records.NewHandler(deps.Expenses, deps.Incomes, responder)
	statsHandler := stats.NewHandler(deps.Stats, responder)
	healthHandler := health.NewHandler(deps.DB)

	requireAuth := middleware.NewAuthMiddleware(deps.Gate, responder)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/", healthHandler.Info)
	app.Get("/health", healthHandler.Health)

	// Auth routes (публичные).
	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authHandler.Me, requireAuth)

	// Маршруты пользователя.
	userRoutes := app.Group("/users", requireAuth)
	userRoutes.Get("/profile", authHandler.Me)
	userRoutes.Post("/:id/amounts", recordsHandler.CreateExpense)
	userRoutes.Get("/:id/amounts", recordsHandler.ListExpenses)
	userRoutes.Get("/:id/stats/total", statsHandler.Total)
	userRoutes.Get("/:id/stats/by-category", statsHandler.ByCategory)
	userRoutes.Get("/:id/stats/daily", statsHandler.Daily)
	userRoutes.Get("/:id/stats/monthly", statsHandler.Monthly)
	userRoutes.Get("/:id/stats/category", statsHandler.Categories)

	// Маршруты расходов.
	amountRoutes := app.Group("/amounts", requireAuth)
	amountRoutes.Delete("/:id", recordsHandler.DeleteExpense)

	// Маршруты доходов.
	profitRoutes := app.Group("/profits", requireAuth)
	profitRoutes.Post("/", recordsHandler.CreateIncome)
	profitRoutes.Get("/", recordsHandler.ListIncomes)
	profitRoutes.Get("/by-date", recordsHandler.ListIncomesByDate)
	profitRoutes.Delete("/:id", recordsHandler.DeleteIncome)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return response.JSON(c, fiber.StatusNotFound, dto.ErrorResponse{
			Success: false,
			Kind:    string(apperr.KindNotFound),
			Message: ErrorRouteNotFound,
		})
	})
}

// Package records содержит HTTP обработчики расходов и доходов.
package records

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"fintrack/internal/finance/adapters/http/response"
	"fintrack/internal/finance/app/dto"
	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/ports/api"
	"fintrack/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreateExpense = "records handler: create expense"
	LogHandlerListExpenses  = "records handler: list expenses"
	LogHandlerDeleteExpense = "records handler: delete expense"
	LogHandlerCreateIncome  = "records handler: create income"
	LogHandlerListIncomes   = "records handler: list incomes"
	LogHandlerDeleteIncome  = "records handler: delete income"

	MessageExpenseDeleted = "Amount deleted successfully"
	MessageIncomeDeleted  = "Profit deleted successfully"
)

// ErrInvalidRequestBody возвращается для тела запроса, которое не удалось разобрать.
var ErrInvalidRequestBody = fmt.Errorf("invalid request body: %w", apperr.ErrInvalidInput)

// Handler содержит HTTP обработчики записей.
type Handler struct {
	expenses  api.ExpenseUseCase
	incomes   api.IncomeUseCase
	responder response.Responder
}

// NewHandler создает новый экземпляр обработчика записей.
func NewHandler(expenses api.ExpenseUseCase, incomes api.IncomeUseCase, responder response.Responder) *Handler {
	return &Handler{
		expenses:  expenses,
		incomes:   incomes,
		responder: responder,
	}
}

// CreateExpense создает расход пользователя из пути запроса.
func (h *Handler) CreateExpense(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerCreateExpense)

	user, err := response.User(ctx)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	var req dto.ExpenseRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return h.responder.Error(ctx, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
	}

	expense, err := h.expenses.Create(requestCtx, user, ctx.Params("id"), req.ToInput())
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	log.Info(requestCtx, "expense created", zap.String("expense_id", expense.ID))
	return response.JSON(ctx, http.StatusCreated, expense)
}

// ListExpenses возвращает расходы пользователя, новые первыми.
func (h *Handler) ListExpenses(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListExpenses)

	user, err := response.User(ctx)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	expenses, err := h.expenses.List(requestCtx, user, ctx.Params("id"))
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusOK, expenses)
}

// DeleteExpense удаляет расход владельца.
func (h *Handler) DeleteExpense(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerDeleteExpense)

	user, err := response.User(ctx)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	expenseID := ctx.Params("id")
	if err := h.expenses.Delete(requestCtx, user, expenseID); err != nil {
		return h.responder.Error(ctx, err)
	}

	log.Info(requestCtx, "expense deleted", zap.String("expense_id", expenseID))
	return response.JSON(ctx, http.StatusOK, dto.MessageResponse{Success: true, Message: MessageExpenseDeleted})
}

// CreateIncome создает доход текущего пользователя.
func (h *Handler) CreateIncome(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerCreateIncome)

	user, err := response.User(ctx)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	var req dto.IncomeRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return h.responder.Error(ctx, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
	}

	income, err := h.incomes.Create(requestCtx, user, req.ToInput())
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	log.Info(requestCtx, "income created", zap.String("income_id", income.ID))
	return response.JSON(ctx, http.StatusCreated, income)
}

// ListIncomes возвращает все доходы текущего пользователя.
func (h *Handler) ListIncomes(ctx fiber.Ctx) error {
	return h.listIncomes(ctx, entities.DateRange{})
}

// ListIncomesByDate возвращает доходы в диапазоне startDate..endDate.
func (h *Handler) ListIncomesByDate(ctx fiber.Ctx) error {
	filter, err := dto.ParseRange(ctx.Query("startDate"), ctx.Query("endDate"))
	if err != nil {
		return h.responder.Error(ctx, err)
	}
	return h.listIncomes(ctx, filter)
}

func (h *Handler) listIncomes(ctx fiber.Ctx, filter entities.DateRange) error {
	requestCtx := response.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListIncomes)

	user, err := response.User(ctx)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	incomes, err := h.incomes.List(requestCtx, user, filter)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusOK, incomes)
}

// DeleteIncome удаляет доход владельца.
func (h *Handler) DeleteIncome(ctx fiber.Ctx) error {
	requestCtx := response.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerDeleteIncome)

	user, err := response.User(ctx)
	if err != nil {
		return h.responder.Error(ctx, err)
	}

	incomeID := ctx.Params("id")
	if err := h.incomes.Delete(requestCtx, user, incomeID); err != nil {
		return h.responder.Error(ctx, err)
	}

	log.Info(requestCtx, "income deleted", zap.String("income_id", incomeID))
	return response.JSON(ctx, http.StatusOK, dto.MessageResponse{Success: true, Message: MessageIncomeDeleted})
}

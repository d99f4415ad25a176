package dto

import (
	"fintrack/internal/finance/domain/entities"
)

// ExpenseRequest содержит данные для создания расхода.
type ExpenseRequest struct {
	Category string   `json:"category"`
	Amount   *float64 `json:"amount"`
	Note     string   `json:"note"`
	Date     *Date    `json:"date"`
	Type     string   `json:"type"`
}

// ToInput преобразует запрос во входные данные домена.
func (r ExpenseRequest) ToInput() entities.ExpenseInput {
	return entities.ExpenseInput{
		Category: r.Category,
		Amount:   r.Amount,
		Note:     r.Note,
		Date:     r.Date.Ptr(),
		Type:     r.Type,
	}
}

// IncomeRequest содержит данные для создания дохода.
type IncomeRequest struct {
	Title    string   `json:"title"`
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
	Date     *Date    `json:"date"`
}

// ToInput преобразует запрос во входные данные домена.
func (r IncomeRequest) ToInput() entities.IncomeInput {
	return entities.IncomeInput{
		Title:    r.Title,
		Amount:   r.Amount,
		Category: r.Category,
		Date:     r.Date.Ptr(),
	}
}

// MessageResponse - подтверждение операции.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TotalResponse - сумма расходов.
type TotalResponse struct {
	Total float64 `json:"total"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Debug   string `json:"debug,omitempty"`
}

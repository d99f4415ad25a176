package entities

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/finance/domain/apperr"
)

// IncomeCategory - категория дохода.
type IncomeCategory string

// Категории доходов.
const (
	IncomeSalary     IncomeCategory = "salary"
	IncomeFreelance  IncomeCategory = "freelance"
	IncomeInvestment IncomeCategory = "investment"
	IncomeGift       IncomeCategory = "gift"
	IncomeOther      IncomeCategory = "other"
)

// Ошибки валидации доходов.
var (
	ErrTitleAndAmountRequired = fmt.Errorf("title and amount are required: %w", apperr.ErrInvalidInput)
	ErrInvalidIncomeCategory  = fmt.Errorf("unknown income category: %w", apperr.ErrInvalidInput)
	ErrIncomeNotFound         = fmt.Errorf("profit not found: %w", apperr.ErrNotFound)
)

// Valid сообщает, входит ли категория в допустимый набор.
func (c IncomeCategory) Valid() bool {
	switch c {
	case IncomeSalary, IncomeFreelance, IncomeInvestment, IncomeGift, IncomeOther:
		return true
	}
	return false
}

// Income - запись о доходе. Сумма может быть любого знака.
type Income struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user"`
	Title     string         `json:"title"`
	Amount    float64        `json:"amount"`
	Category  IncomeCategory `json:"category"`
	Date      time.Time      `json:"date"`
	CreatedAt time.Time      `json:"createdAt"`
}

// IncomeInput - данные для создания дохода.
type IncomeInput struct {
	Title    string
	Amount   *float64
	Category string
	Date     *time.Time
}

// NewIncome проверяет ввод и создает доход владельца userID.
func NewIncome(userID string, in IncomeInput, now time.Time) (*Income, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Amount == nil {
		return nil, ErrTitleAndAmountRequired
	}

	category := IncomeOther
	if c := strings.TrimSpace(in.Category); c != "" {
		category = IncomeCategory(c)
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIncomeCategory, category)
		}
	}

	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	return &Income{
		UserID:    userID,
		Title:     title,
		Amount:    *in.Amount,
		Category:  category,
		Date:      date,
		CreatedAt: now,
	}, nil
}

package entities

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/finance/domain/apperr"
)

// ExpenseCategory - категория расхода.
type ExpenseCategory string

// Категории расходов.
const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryUtilities     ExpenseCategory = "utilities"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryHealth        ExpenseCategory = "health"
	CategoryOther         ExpenseCategory = "other"
)

// RecordType - тип записи расхода.
type RecordType string

// Типы записей.
const (
	TypeExpense RecordType = "expense"
	TypeIncome  RecordType = "income"
)

// MaxNoteLength - максимальная длина заметки в символах.
const MaxNoteLength = 500

// Ошибки валидации расходов.
var (
	ErrCategoryAndAmountRequired = fmt.Errorf("category and amount are required: %w", apperr.ErrInvalidInput)
	ErrInvalidExpenseCategory    = fmt.Errorf("unknown expense category: %w", apperr.ErrInvalidInput)
	ErrNegativeAmount            = fmt.Errorf("amount must not be negative: %w", apperr.ErrInvalidInput)
	ErrNoteTooLong               = fmt.Errorf("note must be at most %d characters: %w", MaxNoteLength, apperr.ErrInvalidInput)
	ErrInvalidRecordType         = fmt.Errorf("type must be expense or income: %w", apperr.ErrInvalidInput)
	ErrExpenseNotFound           = fmt.Errorf("amount not found: %w", apperr.ErrNotFound)
)

// Valid сообщает, входит ли категория в допустимый набор.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryUtilities, CategoryEntertainment,
		CategoryShopping, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

// Expense - запись о расходе.
type Expense struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user"`
	Category  ExpenseCategory `json:"category"`
	Amount    float64         `json:"amount"`
	Note      string          `json:"note,omitempty"`
	Date      time.Time       `json:"date"`
	Type      RecordType      `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ExpenseInput - данные для создания расхода. Amount и Date необязательны на входе.
type ExpenseInput struct {
	Category string
	Amount   *float64
	Note     string
	Date     *time.Time
	Type     string
}

// NewExpense проверяет ввод и создает расход владельца userID.
func NewExpense(userID string, in ExpenseInput, now time.Time) (*Expense, error) {
	category := ExpenseCategory(strings.TrimSpace(in.Category))
	if category == "" || in.Amount == nil {
		return nil, ErrCategoryAndAmountRequired
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExpenseCategory, category)
	}
	if *in.Amount < 0 {
		return nil, ErrNegativeAmount
	}

	note := strings.TrimSpace(in.Note)
	if len([]rune(note)) > MaxNoteLength {
		return nil, ErrNoteTooLong
	}

	recordType := TypeExpense
	if in.Type != "" {
		recordType = RecordType(in.Type)
		if recordType != TypeExpense && recordType != TypeIncome {
			return nil, ErrInvalidRecordType
		}
	}

	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	return &Expense{
		UserID:    userID,
		Category:  category,
		Amount:    *in.Amount,
		Note:      note,
		Date:      date,
		Type:      recordType,
		CreatedAt: now,
	}, nil
}

package entities_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/domain/entities"
)

func amount(v float64) *float64 { return &v }

func TestNewCredentials(t *testing.T) {
	t.Run("normalizes username and email", func(t *testing.T) {
		creds, err := entities.NewCredentials("  alice ", " Alice@Example.COM ", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice", creds.Username)
		assert.Equal(t, "alice@example.com", creds.Email)
		assert.Equal(t, "secret1", creds.Password)
	})

	t.Run("password length is bounded in bytes", func(t *testing.T) {
		_, err := entities.NewCredentials("alice", "alice@example.com", strings.Repeat("a", entities.MaxPasswordLength))
		require.NoError(t, err)

		_, err = entities.NewCredentials("alice", "alice@example.com", strings.Repeat("a", entities.MaxPasswordLength+1))
		require.ErrorIs(t, err, entities.ErrPasswordTooLong)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

		// 25 символов по 3 байта
		_, err = entities.NewCredentials("alice", "alice@example.com", strings.Repeat("€", 25))
		require.ErrorIs(t, err, entities.ErrPasswordTooLong)
	})

	t.Run("collects every validation error", func(t *testing.T) {
		_, err := entities.NewCredentials("al", "not-an-email", "123")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUsernameTooShort)
		assert.ErrorIs(t, err, entities.ErrInvalidEmail)
		assert.ErrorIs(t, err, entities.ErrPasswordTooShort)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	})
}

func TestSameUsername(t *testing.T) {
	assert.True(t, entities.SameUsername("Alice", "alice "))
	assert.False(t, entities.SameUsername("alice", "alicia"))
}

func TestNewExpense(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("defaults date and type", func(t *testing.T) {
		e, err := entities.NewExpense("u1", entities.ExpenseInput{Category: "food", Amount: amount(12.5)}, now)
		require.NoError(t, err)
		assert.Equal(t, "u1", e.UserID)
		assert.Equal(t, entities.CategoryFood, e.Category)
		assert.Equal(t, now, e.Date)
		assert.Equal(t, now, e.CreatedAt)
		assert.Equal(t, entities.TypeExpense, e.Type)
	})

	t.Run("keeps explicit date and type", func(t *testing.T) {
		date := now.AddDate(0, 0, -3)
		e, err := entities.NewExpense("u1", entities.ExpenseInput{
			Category: "health", Amount: amount(0), Date: &date, Type: "income", Note: " pills ",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, date, e.Date)
		assert.Equal(t, entities.TypeIncome, e.Type)
		assert.Equal(t, "pills", e.Note)
	})

	tests := []struct {
		name string
		in   entities.ExpenseInput
		want error
	}{
		{"missing category", entities.ExpenseInput{Amount: amount(1)}, entities.ErrCategoryAndAmountRequired},
		{"missing amount", entities.ExpenseInput{Category: "food"}, entities.ErrCategoryAndAmountRequired},
		{"unknown category", entities.ExpenseInput{Category: "rent", Amount: amount(1)}, entities.ErrInvalidExpenseCategory},
		{"negative amount", entities.ExpenseInput{Category: "food", Amount: amount(-0.01)}, entities.ErrNegativeAmount},
		{"long note", entities.ExpenseInput{Category: "food", Amount: amount(1), Note: strings.Repeat("x", 501)}, entities.ErrNoteTooLong},
		{"bad type", entities.ExpenseInput{Category: "food", Amount: amount(1), Type: "transfer"}, entities.ErrInvalidRecordType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := entities.NewExpense("u1", tt.in, now)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestNewIncome(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("defaults category to other and allows negative amount", func(t *testing.T) {
		in, err := entities.NewIncome("u1", entities.IncomeInput{Title: " refund ", Amount: amount(-20)}, now)
		require.NoError(t, err)
		assert.Equal(t, entities.IncomeOther, in.Category)
		assert.Equal(t, "refund", in.Title)
		assert.Equal(t, -20.0, in.Amount)
		assert.Equal(t, now, in.Date)
	})

	t.Run("requires title and amount", func(t *testing.T) {
		_, err := entities.NewIncome("u1", entities.IncomeInput{Title: "  ", Amount: amount(1)}, now)
		assert.ErrorIs(t, err, entities.ErrTitleAndAmountRequired)

		_, err = entities.NewIncome("u1", entities.IncomeInput{Title: "salary"}, now)
		assert.ErrorIs(t, err, entities.ErrTitleAndAmountRequired)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := entities.NewIncome("u1", entities.IncomeInput{Title: "x", Amount: amount(1), Category: "lottery"}, now)
		assert.ErrorIs(t, err, entities.ErrInvalidIncomeCategory)
	})
}

func TestDateRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	start, end := day(5), day(10)

	assert.True(t, entities.DateRange{}.Contains(day(1)))
	assert.True(t, entities.DateRange{}.IsZero())

	r := entities.DateRange{Start: &start, End: &end}
	assert.False(t, r.IsZero())
	assert.True(t, r.Contains(start), "start is inclusive")
	assert.True(t, r.Contains(end), "end is inclusive")
	assert.False(t, r.Contains(day(4)))
	assert.False(t, r.Contains(day(11)))

	onlyStart := entities.DateRange{Start: &start}
	assert.True(t, onlyStart.Contains(day(30)))
	assert.False(t, onlyStart.Contains(day(1)))
}

func TestYearRange(t *testing.T) {
	r := entities.YearRange(2023)
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)

	assert.True(t, r.Contains(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2022, 12, 31, 23, 59, 59, 0, time.UTC)))
}

package postgres_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/finance/adapters/postgres"
	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/domain/entities"
)

var expenseColumns = []string{"id", "user_id", "category", "amount", "note", "date", "type", "created_at"}

func TestExpenseRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

	input := &entities.Expense{
		UserID:    "user-1",
		Category:  entities.CategoryFood,
		Amount:    12.5,
		Note:      "lunch",
		Date:      now,
		Type:      entities.TypeExpense,
		CreatedAt: now,
	}

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO expenses .+").
		WithArgs("user-1", "food", 12.5, "lunch", now, "expense", now).
		WillReturnRows(pgxmock.NewRows(expenseColumns).
			AddRow("exp-1", "user-1", "food", 12.5, "lunch", now, "expense", now))

	repo := postgres.NewExpenseRepository(mock)
	created, err := repo.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "exp-1", created.ID)
	assert.Equal(t, entities.CategoryFood, created.Category)
	assert.Equal(t, entities.TypeExpense, created.Type)
	assert.Equal(t, 12.5, created.Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_FindByOwner(t *testing.T) {
	ctx := testContext(t)
	moscow := time.FixedZone("MSK", 3*60*60)
	first := time.Date(2024, 5, 1, 23, 30, 0, 0, moscow)
	second := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	t.Run("Без диапазона", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		var noBound *time.Time
		mock.ExpectQuery("SELECT .+ FROM expenses WHERE user_id = .+ ORDER BY created_at DESC").
			WithArgs("user-1", noBound, noBound).
			WillReturnRows(pgxmock.NewRows(expenseColumns).
				AddRow("exp-2", "user-1", "transport", 5.0, "", second, "expense", second).
				AddRow("exp-1", "user-1", "food", 10.0, "", first, "expense", first))

		repo := postgres.NewExpenseRepository(mock)
		expenses, err := repo.FindByOwner(ctx, "user-1", entities.DateRange{})

		require.NoError(t, err)
		require.Len(t, expenses, 2)
		assert.Equal(t, "exp-2", expenses[0].ID)
		assert.Equal(t, time.UTC, expenses[1].Date.Location(), "dates should be normalised to UTC")
		assert.True(t, first.Equal(expenses[1].Date))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пустой результат", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
		filter := entities.DateRange{Start: &start, End: &end}

		mock.ExpectQuery("SELECT .+ FROM expenses .+").
			WithArgs("user-1", filter.Start, filter.End).
			WillReturnRows(pgxmock.NewRows(expenseColumns))

		repo := postgres.NewExpenseRepository(mock)
		expenses, err := repo.FindByOwner(ctx, "user-1", filter)

		require.NoError(t, err)
		assert.NotNil(t, expenses)
		assert.Empty(t, expenses)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		var noBound *time.Time
		mock.ExpectQuery("SELECT .+ FROM expenses .+").
			WithArgs("user-1", noBound, noBound).
			WillReturnError(errors.New("connection refused"))

		repo := postgres.NewExpenseRepository(mock)
		expenses, err := repo.FindByOwner(ctx, "user-1", entities.DateRange{})

		assert.Nil(t, expenses)
		require.ErrorIs(t, err, apperr.ErrStorage)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExpenseRepository_FindByID(t *testing.T) {
	ctx := testContext(t)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM expenses WHERE id = .+").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := postgres.NewExpenseRepository(mock)
	expense, err := repo.FindByID(ctx, "missing")

	assert.Nil(t, expense)
	require.ErrorIs(t, err, entities.ErrExpenseNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_DeleteByID(t *testing.T) {
	ctx := testContext(t)

	testCases := []struct {
		name     string
		affected int64
		expected bool
	}{
		{name: "Запись удалена", affected: 1, expected: true},
		{name: "Запись отсутствует", affected: 0, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectExec("DELETE FROM expenses").
				WithArgs("exp-1").
				WillReturnResult(pgxmock.NewResult("DELETE", tc.affected))

			repo := postgres.NewExpenseRepository(mock)
			deleted, err := repo.DeleteByID(ctx, "exp-1")

			require.NoError(t, err)
			assert.Equal(t, tc.expected, deleted)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("Ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM expenses").
			WithArgs("exp-1").
			WillReturnError(errors.New("connection refused"))

		repo := postgres.NewExpenseRepository(mock)
		deleted, err := repo.DeleteByID(ctx, "exp-1")

		assert.False(t, deleted)
		require.ErrorIs(t, err, apperr.ErrStorage)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

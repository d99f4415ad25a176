package http_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/finance/domain/entities"
)

// clock выдает строго возрастающее время создания записей.
type clock struct {
	mu   sync.Mutex
	next time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next = c.next.Add(time.Second)
	return c.next
}

type memUsers struct {
	mu    sync.Mutex
	clock *clock
	users []entities.User
}

func (m *memUsers) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, entities.ErrEmailTaken
		}
		if strings.EqualFold(u.Username, user.Username) {
			return nil, entities.ErrUsernameTaken
		}
	}
	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = m.clock.now()
	m.users = append(m.users, stored)
	return &stored, nil
}

func (m *memUsers) find(match func(entities.User) bool) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*entities.User, error) {
	return m.find(func(u entities.User) bool { return u.ID == id })
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	return m.find(func(u entities.User) bool { return strings.EqualFold(u.Email, email) })
}

func (m *memUsers) FindByEmailOrUsername(_ context.Context, email, username string) (*entities.User, error) {
	user, err := m.find(func(u entities.User) bool {
		return strings.EqualFold(u.Email, email) || strings.EqualFold(u.Username, username)
	})
	if errors.Is(err, entities.ErrUserNotFound) {
		return nil, nil
	}
	return user, err
}

type memExpenses struct {
	mu       sync.Mutex
	clock    *clock
	expenses []entities.Expense
}

func (m *memExpenses) Create(_ context.Context, expense *entities.Expense) (*entities.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *expense
	stored.ID = uuid.NewString()
	stored.CreatedAt = m.clock.now()
	m.expenses = append(m.expenses, stored)
	return &stored, nil
}

func (m *memExpenses) FindByOwner(_ context.Context, ownerID string, filter entities.DateRange) ([]entities.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []entities.Expense{}
	for _, e := range m.expenses {
		if e.UserID == ownerID && filter.Contains(e.Date) {
			result = append(result, e)
		}
	}
	slices.SortFunc(result, func(a, b entities.Expense) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return result, nil
}

func (m *memExpenses) FindByID(_ context.Context, id string) (*entities.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.expenses {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, entities.ErrExpenseNotFound
}

func (m *memExpenses) DeleteByID(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.expenses)
	m.expenses = slices.DeleteFunc(m.expenses, func(e entities.Expense) bool { return e.ID == id })
	return len(m.expenses) < before, nil
}

type memIncomes struct {
	mu      sync.Mutex
	clock   *clock
	incomes []entities.Income
}

func (m *memIncomes) Create(_ context.Context, income *entities.Income) (*entities.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *income
	stored.ID = uuid.NewString()
	stored.CreatedAt = m.clock.now()
	m.incomes = append(m.incomes, stored)
	return &stored, nil
}

func (m *memIncomes) FindByOwner(_ context.Context, ownerID string, filter entities.DateRange) ([]entities.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []entities.Income{}
	for _, i := range m.incomes {
		if i.UserID == ownerID && filter.Contains(i.Date) {
			result = append(result, i)
		}
	}
	slices.SortFunc(result, func(a, b entities.Income) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

func (m *memIncomes) FindByID(_ context.Context, id string) (*entities.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.incomes {
		if i.ID == id {
			found := i
			return &found, nil
		}
	}
	return nil, entities.ErrIncomeNotFound
}

func (m *memIncomes) DeleteByID(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.incomes)
	m.incomes = slices.DeleteFunc(m.incomes, func(i entities.Income) bool { return i.ID == id })
	return len(m.incomes) < before, nil
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

package app_test

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"fintrack/internal/finance/domain/entities"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*entities.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type mockExpenseRepository struct {
	mock.Mock
}

func (m *mockExpenseRepository) Create(ctx context.Context, expense *entities.Expense) (*entities.Expense, error) {
	args := m.Called(ctx, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Expense), args.Error(1)
}

func (m *mockExpenseRepository) FindByOwner(ctx context.Context, ownerID string, filter entities.DateRange) ([]entities.Expense, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Expense), args.Error(1)
}

func (m *mockExpenseRepository) FindByID(ctx context.Context, id string) (*entities.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Expense), args.Error(1)
}

func (m *mockExpenseRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) DeletePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

// memExpenseRepository - хранилище расходов в памяти для сценарных тестов.
type memExpenseRepository struct {
	mu      sync.Mutex
	seq     int
	records []entities.Expense
}

func (r *memExpenseRepository) Create(_ context.Context, expense *entities.Expense) (*entities.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	stored := *expense
	stored.ID = "00000000-0000-4000-8000-" + leftPad(r.seq)
	r.records = append(r.records, stored)
	return &stored, nil
}

func (r *memExpenseRepository) FindByOwner(_ context.Context, ownerID string, filter entities.DateRange) ([]entities.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entities.Expense, 0)
	for _, e := range slices.Backward(r.records) {
		if e.UserID == ownerID && filter.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memExpenseRepository) FindByID(_ context.Context, id string) (*entities.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.records {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, entities.ErrExpenseNotFound
}

func (r *memExpenseRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.records)
	r.records = slices.DeleteFunc(r.records, func(e entities.Expense) bool { return e.ID == id })
	return len(r.records) < before, nil
}

func leftPad(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 12 {
		s = "0" + s
	}
	return s
}

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/finance/adapters/services"
	domain "fintrack/internal/finance/domain/services"
)

const (
	msgCostClamped        = "cost below minimum should be raised"
	msgCostDefault        = "zero cost should use default"
	msgHashVerifiable     = "created hash should be verifiable"
	msgWrongPassword      = "wrong password should not verify"
	msgEmptyPasswordError = "should return error for empty password"
	msgSaltedHashes       = "hashes of same password should differ due to salt"
)

func TestNewBcryptCost(t *testing.T) {
	testCases := []struct {
		name     string
		cost     int
		expected int
	}{
		{name: "zero uses default", cost: 0, expected: domain.DefaultBcryptCost},
		{name: "below minimum", cost: 4, expected: domain.MinBcryptCost},
		{name: "at minimum", cost: domain.MinBcryptCost, expected: domain.MinBcryptCost},
		{name: "above maximum", cost: 99, expected: bcrypt.MaxCost},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, services.NewBcrypt(tc.cost).Cost(), msgCostClamped)
		})
	}
}

func TestBcryptHashAndVerify(t *testing.T) {
	ctx := context.Background()
	service := services.NewBcrypt(domain.MinBcryptCost)

	hash, err := service.Hash(ctx, "secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, domain.MinBcryptCost, cost)

	ok, err := service.Verify(ctx, "secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok, msgHashVerifiable)

	ok, err = service.Verify(ctx, "secret124", hash)
	require.NoError(t, err)
	assert.False(t, ok, msgWrongPassword)

	other, err := service.Hash(ctx, "secret123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, msgSaltedHashes)
}

func TestBcryptEmptyInput(t *testing.T) {
	ctx := context.Background()
	service := services.NewBcrypt(domain.MinBcryptCost)

	_, err := service.Hash(ctx, "")
	require.ErrorIs(t, err, domain.ErrInvalidPassword, msgEmptyPasswordError)

	_, err = service.Verify(ctx, "", "hash")
	require.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = service.Verify(ctx, "password", "not-a-bcrypt-hash")
	require.Error(t, err)
}

func TestServiceFactory(t *testing.T) {
	factory, err := services.NewServiceFactory(testSecret, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, factory.PasswordService())
	assert.NotNil(t, factory.TokenService())

	_, err = services.NewServiceFactory("", 0, 0)
	require.ErrorIs(t, err, domain.ErrEmptySecretKey)
}

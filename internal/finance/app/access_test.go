package app_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fintrack/internal/finance/app"
	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/domain/services"
)

func TestAccessGate_Authenticate(t *testing.T) {
	ctx := context.Background()

	storedUser := &entities.User{
		ID:           testUserID,
		Username:     testUsername,
		Email:        testEmail,
		PasswordHash: testHash,
	}

	t.Run("Success - hash stripped", func(t *testing.T) {
		users, tokens := new(mockUserRepository), new(mockTokenService)
		tokens.On("Verify", mock.Anything, testToken).Return(testUserID, nil).Once()
		users.On("FindByID", mock.Anything, testUserID).Return(storedUser, nil).Once()

		user, err := app.NewAccessGate(users, tokens).Authenticate(ctx, testToken)

		require.NoError(t, err)
		assert.Equal(t, testUserID, user.ID)
		assert.Empty(t, user.PasswordHash)
		assert.Equal(t, testHash, storedUser.PasswordHash)
	})

	testCases := []struct {
		name     string
		token    string
		setup    func(users *mockUserRepository, tokens *mockTokenService)
		expected apperr.Kind
	}{
		{
			name:     "missing token",
			token:    "",
			setup:    func(*mockUserRepository, *mockTokenService) {},
			expected: apperr.KindUnauthenticated,
		},
		{
			name:  "invalid token",
			token: "bad",
			setup: func(_ *mockUserRepository, tokens *mockTokenService) {
				tokens.On("Verify", mock.Anything, "bad").Return("", services.ErrInvalidJWTToken).Once()
			},
			expected: apperr.KindInvalidToken,
		},
		{
			name:  "expired token",
			token: "old",
			setup: func(_ *mockUserRepository, tokens *mockTokenService) {
				tokens.On("Verify", mock.Anything, "old").Return("", services.ErrExpiredJWTToken).Once()
			},
			expected: apperr.KindExpiredToken,
		},
		{
			name:  "unknown identity",
			token: testToken,
			setup: func(users *mockUserRepository, tokens *mockTokenService) {
				tokens.On("Verify", mock.Anything, testToken).Return(otherUserID, nil).Once()
				users.On("FindByID", mock.Anything, otherUserID).Return(nil, entities.ErrUserNotFound).Once()
			},
			expected: apperr.KindUnknownIdentity,
		},
		{
			name:  "storage failure",
			token: testToken,
			setup: func(users *mockUserRepository, tokens *mockTokenService) {
				tokens.On("Verify", mock.Anything, testToken).Return(testUserID, nil).Once()
				users.On("FindByID", mock.Anything, testUserID).Return(nil, fmt.Errorf("query: %w", apperr.ErrStorage)).Once()
			},
			expected: apperr.KindStorage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			users, tokens := new(mockUserRepository), new(mockTokenService)
			tc.setup(users, tokens)

			user, err := app.NewAccessGate(users, tokens).Authenticate(ctx, tc.token)

			assert.Nil(t, user)
			assert.Equal(t, tc.expected, apperr.KindOf(err))
			tokens.AssertExpectations(t)
			users.AssertExpectations(t)
		})
	}
}

func TestRequireOwner(t *testing.T) {
	alice := &entities.User{ID: testUserID}

	assert.True(t, app.CanAccess(alice, testUserID))
	assert.False(t, app.CanAccess(alice, otherUserID))
	assert.False(t, app.CanAccess(nil, testUserID))
	assert.False(t, app.CanAccess(&entities.User{}, ""))

	require.NoError(t, app.RequireOwner(alice, testUserID))

	err := app.NewAccessGate(nil, nil).RequireOwner(alice, otherUserID)
	require.ErrorIs(t, err, services.ErrNotOwner)
	assert.Equal(t, apperr.KindAccessDenied, apperr.KindOf(err))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/finance/adapters/services"
	"fintrack/internal/finance/domain/apperr"
	domain "fintrack/internal/finance/domain/services"
	"fintrack/pkg/logger"
)

//nolint:gosec
const (
	testSecret              = "test-secret-key-12345"
	testUserID              = "0b6f7a1e-4c59-4a1c-9e41-5f3b9e0c1d2a"
	msgErrorCreatingLogger  = "error creating test logger"
	msgNoErrorCreating      = "should not return error when creating service"
	msgNoErrorIssuing       = "should not return error when issuing token"
	msgTokenNotEmpty        = "token should not be empty"
	msgExpiryMatchesTTL     = "expiration should be clock plus TTL"
	msgUserIDRoundTrip      = "verified user ID should match issued one"
	msgTokensDeterministic  = "same secret and clock should give same token"
	msgExpiredTokenError    = "should return expired token error"
	msgInvalidTokenError    = "should return invalid token error"
	msgEmptySecretRejected  = "empty secret should be rejected"
	msgSubjectMatchesUserID = "subject claim should match user ID"
	msgDefaultTTLApplied    = "zero TTL should fall back to default"
	msgExpiredKind          = "expired token should classify as ExpiredToken"
	msgInvalidKind          = "bad token should classify as InvalidToken"
	msgNoErrorParsingClaims = "should be able to parse claims from token"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err, msgErrorCreatingLogger)
	return logger.NewContext(context.Background(), testLogger)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestNewJWT(t *testing.T) {
	t.Run("empty secret", func(t *testing.T) {
		service, err := services.NewJWT("", time.Hour)
		require.ErrorIs(t, err, domain.ErrEmptySecretKey, msgEmptySecretRejected)
		assert.Nil(t, service)
	})

	t.Run("default TTL", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		service, err := services.NewJWT(testSecret, 0, services.WithClock(fixedClock(now)))
		require.NoError(t, err, msgNoErrorCreating)

		_, expiresAt, err := service.Issue(testContext(t), testUserID)
		require.NoError(t, err, msgNoErrorIssuing)
		assert.True(t, expiresAt.Equal(now.Add(domain.DefaultTokenTTL)), msgDefaultTTLApplied)
	})
}

func TestIssueAndVerify(t *testing.T) {
	ctx := testContext(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	service, err := services.NewJWT(testSecret, time.Hour, services.WithClock(fixedClock(now)))
	require.NoError(t, err, msgNoErrorCreating)

	token, expiresAt, err := service.Issue(ctx, testUserID)
	require.NoError(t, err, msgNoErrorIssuing)
	assert.NotEmpty(t, token, msgTokenNotEmpty)
	assert.True(t, expiresAt.Equal(now.Add(time.Hour)), msgExpiryMatchesTTL)

	userID, err := service.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID, msgUserIDRoundTrip)

	again, _, err := service.Issue(ctx, testUserID)
	require.NoError(t, err, msgNoErrorIssuing)
	assert.Equal(t, token, again, msgTokensDeterministic)

	claims := &services.Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err, msgNoErrorParsingClaims)
	assert.Equal(t, testUserID, claims.Subject, msgSubjectMatchesUserID)
	assert.Equal(t, testUserID, claims.UserID)
}

func TestVerifyExpired(t *testing.T) {
	ctx := testContext(t)
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	issuer, err := services.NewJWT(testSecret, time.Hour, services.WithClock(fixedClock(issuedAt)))
	require.NoError(t, err, msgNoErrorCreating)
	token, _, err := issuer.Issue(ctx, testUserID)
	require.NoError(t, err, msgNoErrorIssuing)

	verifier, err := services.NewJWT(testSecret, time.Hour, services.WithClock(fixedClock(issuedAt.Add(2*time.Hour))))
	require.NoError(t, err, msgNoErrorCreating)

	_, err = verifier.Verify(ctx, token)
	require.ErrorIs(t, err, domain.ErrExpiredJWTToken, msgExpiredTokenError)
	assert.Equal(t, apperr.KindExpiredToken, apperr.KindOf(err), msgExpiredKind)
}

func TestVerifyInvalid(t *testing.T) {
	ctx := testContext(t)
	now := time.Now()

	service, err := services.NewJWT(testSecret, time.Hour)
	require.NoError(t, err, msgNoErrorCreating)

	otherKey, err := services.NewJWT("another-secret", time.Hour)
	require.NoError(t, err, msgNoErrorCreating)
	foreignToken, _, err := otherKey.Issue(ctx, testUserID)
	require.NoError(t, err, msgNoErrorIssuing)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, services.Claims{
		UserID: testUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "empty", token: ""},
		{name: "foreign signature", token: foreignToken},
		{name: "unexpected algorithm", token: hs512},
		{name: "empty user id", token: noUser},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			userID, err := service.Verify(ctx, tc.token)
			require.ErrorIs(t, err, domain.ErrInvalidJWTToken, msgInvalidTokenError)
			assert.Empty(t, userID)
			assert.Equal(t, apperr.KindInvalidToken, apperr.KindOf(err), msgInvalidKind)
		})
	}
}

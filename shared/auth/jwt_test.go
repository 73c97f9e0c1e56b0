package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahmoud-Sakhy/user-auth-api/shared/auth"
)

const testSecret = "test-secret"

func newClaims(expiresIn time.Duration) auth.UserClaims {
	now := time.Now()
	return auth.UserClaims{
		UserID: "64f000000000000000000001",
		Email:  "a@x.com",
		Name:   "Ali Hassan",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{"test-issuer"},
		},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	authenticator := auth.NewJWTAuthenticator("test-issuer", "test-issuer")

	token, err := authenticator.GenerateToken(newClaims(time.Hour), testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed := &auth.UserClaims{}
	_, err = authenticator.ValidateTokenWithClaims(token, testSecret, parsed)
	require.NoError(t, err)

	assert.Equal(t, "64f000000000000000000001", parsed.UserID)
	assert.Equal(t, "a@x.com", parsed.Email)
	assert.Equal(t, "Ali Hassan", parsed.Name)
	assert.Equal(t, "user", parsed.Role)
}

func TestValidateTokenFailures(t *testing.T) {
	authenticator := auth.NewJWTAuthenticator("test-issuer", "test-issuer")

	t.Run("wrong secret", func(t *testing.T) {
		token, err := authenticator.GenerateToken(newClaims(time.Hour), testSecret)
		require.NoError(t, err)

		_, err = authenticator.ValidateTokenWithClaims(token, "other-secret", &auth.UserClaims{})
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := authenticator.GenerateToken(newClaims(-time.Hour), testSecret)
		require.NoError(t, err)

		_, err = authenticator.ValidateTokenWithClaims(token, testSecret, &auth.UserClaims{})
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := newClaims(time.Hour)
		claims.Issuer = "other-issuer"
		claims.Audience = jwt.ClaimStrings{"other-issuer"}

		token, err := authenticator.GenerateToken(claims, testSecret)
		require.NoError(t, err)

		_, err = authenticator.ValidateTokenWithClaims(token, testSecret, &auth.UserClaims{})
		assert.Error(t, err)
	})
}

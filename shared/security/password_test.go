package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahmoud-Sakhy/user-auth-api/shared/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	ok, err := security.VerifyPassword("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = security.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := security.HashPassword("secret1")
	require.NoError(t, err)

	second, err := security.HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

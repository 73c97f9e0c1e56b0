package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/otp"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/repository"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/usecase"
)

func TestRequestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds silently for an unknown email", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.passwordReset.RequestReset(ctx, "nobody@x.com"))
		assert.Empty(t, f.dispatcher.codes[otp.PurposeReset])
	})

	t.Run("succeeds silently for an unverified account without issuing a code", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "a@x.com", "secret1")

		require.NoError(t, f.passwordReset.RequestReset(ctx, "a@x.com"))

		user, err := f.users.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Empty(t, user.ResetCode)
		assert.Empty(t, f.dispatcher.codes[otp.PurposeReset])
	})

	t.Run("issues a reset code for a verified account", func(t *testing.T) {
		f := newFixture(t)
		f.registerVerified(t, "a@x.com", "secret1")

		require.NoError(t, f.passwordReset.RequestReset(ctx, "a@x.com"))

		user, err := f.users.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Len(t, user.ResetCode, 6)
		assert.True(t, user.ResetCodeExpiresAt.After(time.Now()))
		assert.Equal(t, user.ResetCode, f.dispatcher.codes[otp.PurposeReset])
	})
}

func TestVerifyResetCode(t *testing.T) {
	ctx := context.Background()

	t.Run("fails for an unknown email", func(t *testing.T) {
		f := newFixture(t)

		err := f.passwordReset.VerifyCode(ctx, "nobody@x.com", "123456")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("fails for a wrong code", func(t *testing.T) {
		f := newFixture(t)
		f.registerVerified(t, "a@x.com", "secret1")
		require.NoError(t, f.passwordReset.RequestReset(ctx, "a@x.com"))

		err := f.passwordReset.VerifyCode(ctx, "a@x.com", "000000")
		assert.ErrorIs(t, err, otp.ErrCodeMismatch)
	})

	t.Run("does not consume the code", func(t *testing.T) {
		f := newFixture(t)
		f.registerVerified(t, "a@x.com", "secret1")
		require.NoError(t, f.passwordReset.RequestReset(ctx, "a@x.com"))
		code := f.dispatcher.codes[otp.PurposeReset]

		// The check is read-only, so it can be repeated.
		require.NoError(t, f.passwordReset.VerifyCode(ctx, "a@x.com", code))
		require.NoError(t, f.passwordReset.VerifyCode(ctx, "a@x.com", code))

		user, err := f.users.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, code, user.ResetCode)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("fails for a wrong code", func(t *testing.T) {
		f := newFixture(t)
		f.registerVerified(t, "a@x.com", "secret1")
		require.NoError(t, f.passwordReset.RequestReset(ctx, "a@x.com"))

		err := f.passwordReset.ResetPassword(ctx, "a@x.com", "000000", "newsecret")
		assert.ErrorIs(t, err, otp.ErrCodeMismatch)
	})

	t.Run("fails for an expired code", func(t *testing.T) {
		f := newFixture(t)
		f.registerVerified(t, "a@x.com", "secret1")
		require.NoError(t, f.passwordReset.RequestReset(ctx, "a@x.com"))

		expired := time.Now().Add(-time.Minute)
		_, err := f.users.UpdateUserByEmail(ctx, "a@x.com", repository.UpdateUserParams{
			ResetCodeExpiresAt: &expired,
		})
		require.NoError(t, err)

		err = f.passwordReset.ResetPassword(ctx, "a@x.com", f.dispatcher.codes[otp.PurposeReset], "newsecret")
		assert.ErrorIs(t, err, otp.ErrCodeExpired)
	})

	t.Run("full round trip replaces the password and consumes the code", func(t *testing.T) {
		f := newFixture(t)
		f.registerVerified(t, "a@x.com", "secret1")

		require.NoError(t, f.passwordReset.RequestReset(ctx, "a@x.com"))
		code := f.dispatcher.codes[otp.PurposeReset]

		require.NoError(t, f.passwordReset.VerifyCode(ctx, "a@x.com", code))
		require.NoError(t, f.passwordReset.ResetPassword(ctx, "a@x.com", code, "newsecret"))

		// Old password no longer works, the new one does.
		_, _, err := f.auth.Login(ctx, usecase.LoginParams{Email: "a@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

		_, _, err = f.auth.Login(ctx, usecase.LoginParams{Email: "a@x.com", Password: "newsecret"})
		assert.NoError(t, err)

		// The consumed code is cleared and cannot be replayed.
		user, err := f.users.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Empty(t, user.ResetCode)

		err = f.passwordReset.ResetPassword(ctx, "a@x.com", code, "anothersecret")
		assert.ErrorIs(t, err, otp.ErrCodeMismatch)
	})
}

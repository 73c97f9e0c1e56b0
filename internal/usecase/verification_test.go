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

func TestSendCode(t *testing.T) {
	ctx := context.Background()

	t.Run("fails for an unknown email", func(t *testing.T) {
		f := newFixture(t)

		err := f.verification.SendCode(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("fails for an already verified account", func(t *testing.T) {
		f := newFixture(t)
		f.registerVerified(t, "a@x.com", "secret1")

		err := f.verification.SendCode(ctx, "a@x.com")
		assert.ErrorIs(t, err, usecase.ErrAlreadyVerified)
	})

	t.Run("issues a fresh code that replaces the registration code", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "a@x.com", "secret1")

		before, err := f.users.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)

		require.NoError(t, f.verification.SendCode(ctx, "a@x.com"))

		after, err := f.users.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Len(t, after.VerificationCode, 6)
		assert.Equal(t, after.VerificationCode, f.dispatcher.codes[otp.PurposeVerification])

		// Only the most recently issued code validates.
		if before.VerificationCode != after.VerificationCode {
			assert.ErrorIs(t,
				f.verification.Verify(ctx, "a@x.com", before.VerificationCode),
				otp.ErrCodeMismatch)
		}
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("fails for an unknown email", func(t *testing.T) {
		f := newFixture(t)

		err := f.verification.Verify(ctx, "nobody@x.com", "123456")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("fails for a wrong code", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "a@x.com", "secret1")

		err := f.verification.Verify(ctx, "a@x.com", "000000")
		assert.ErrorIs(t, err, otp.ErrCodeMismatch)
	})

	t.Run("fails for an expired code", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "a@x.com", "secret1")

		expired := time.Now().Add(-time.Minute)
		_, err := f.users.UpdateUserByEmail(ctx, "a@x.com", repository.UpdateUserParams{
			VerificationCodeExpiresAt: &expired,
		})
		require.NoError(t, err)

		err = f.verification.Verify(ctx, "a@x.com", f.dispatcher.codes[otp.PurposeVerification])
		assert.ErrorIs(t, err, otp.ErrCodeExpired)
	})

	t.Run("verifies the account exactly once", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "a@x.com", "secret1")
		code := f.dispatcher.codes[otp.PurposeVerification]

		require.NoError(t, f.verification.Verify(ctx, "a@x.com", code))

		user, err := f.users.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, user.Verified)
		assert.Empty(t, user.VerificationCode)

		// The consumed code is gone; a second attempt cannot succeed.
		err = f.verification.Verify(ctx, "a@x.com", code)
		assert.ErrorIs(t, err, otp.ErrCodeMismatch)
	})
}

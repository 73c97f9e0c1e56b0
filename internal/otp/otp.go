// Package otp implements the one-time code lifecycle: short-lived numeric
// codes are issued onto a user document, scoped by purpose, and consumed at
// most once. Re-issuing before expiry overwrites the previous code.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/model"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/repository"
)

// Purpose identifies which one-time code fields on the user document a code
// belongs to. Verification and reset codes never collide.
type Purpose string

const (
	PurposeVerification Purpose = "verification"
	PurposeReset        Purpose = "password_reset"
)

// TTL returns how long a freshly issued code of this purpose stays valid.
func (p Purpose) TTL() time.Duration {
	if p == PurposeReset {
		return 10 * time.Minute
	}
	return 15 * time.Minute
}

var (
	ErrCodeMismatch = errors.New("one-time code does not match")
	ErrCodeExpired  = errors.New("one-time code has expired")
)

// Dispatcher delivers an issued code to the user out-of-band. Implementations
// must not block and must swallow delivery failures; issuing never depends on
// delivery succeeding.
type Dispatcher interface {
	Dispatch(purpose Purpose, email, code string, expiresAt time.Time)
}

// GenerateCode returns a 6-digit numeric code, uniform over [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(100000 + n.Int64()).String(), nil
}

// Check validates a submitted code against the user's stored code for the
// given purpose without consuming it. Mismatch is reported before expiry.
func Check(purpose Purpose, user *model.User, submitted string) error {
	stored, expiresAt := storedCode(user, purpose)
	if stored == "" || stored != submitted {
		return ErrCodeMismatch
	}
	if time.Now().After(expiresAt) {
		return ErrCodeExpired
	}
	return nil
}

// Engine issues and consumes one-time codes against the user store.
type Engine struct {
	users      repository.UserRepository
	dispatcher Dispatcher
}

func NewEngine(users repository.UserRepository, dispatcher Dispatcher) *Engine {
	return &Engine{users: users, dispatcher: dispatcher}
}

// Issue generates a fresh code for the purpose, persists it onto the user
// record (overwriting any unconsumed code) and hands it to the dispatcher.
func (e *Engine) Issue(ctx context.Context, purpose Purpose, email string) (string, time.Time, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().Add(purpose.TTL())

	params := repository.UpdateUserParams{}
	if purpose == PurposeReset {
		params.ResetCode = &code
		params.ResetCodeExpiresAt = &expiresAt
	} else {
		params.VerificationCode = &code
		params.VerificationCodeExpiresAt = &expiresAt
	}

	if _, err := e.users.UpdateUserByEmail(ctx, email, params); err != nil {
		return "", time.Time{}, err
	}

	e.dispatcher.Dispatch(purpose, email, code, expiresAt)

	return code, expiresAt, nil
}

// Consume validates the submitted code and, on success, clears the stored
// code and expiry so it cannot be used again. For the verification purpose
// the account is marked verified in the same update; for the reset purpose
// the caller is responsible for replacing the password afterwards.
func (e *Engine) Consume(ctx context.Context, purpose Purpose, user *model.User, submitted string) error {
	if err := Check(purpose, user, submitted); err != nil {
		return err
	}

	params := repository.UpdateUserParams{}
	if purpose == PurposeReset {
		params.ClearResetCode = true
	} else {
		params.ClearVerificationCode = true
		verified := true
		params.Verified = &verified
	}

	_, err := e.users.UpdateUserByEmail(ctx, user.Email, params)
	return err
}

func storedCode(user *model.User, purpose Purpose) (string, time.Time) {
	if purpose == PurposeReset {
		return user.ResetCode, user.ResetCodeExpiresAt
	}
	return user.VerificationCode, user.VerificationCodeExpiresAt
}

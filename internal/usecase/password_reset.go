package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/otp"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/repository"
	"github.com/Mahmoud-Sakhy/user-auth-api/shared/security"
)

// PasswordResetUsecase defines the business logic for the password reset flow.
type PasswordResetUsecase interface {
	// RequestReset initiates the password reset process for a given email.
	// It succeeds silently for unknown and unverified accounts so that the
	// response never reveals whether an email is registered; a reset code is
	// issued only when the account exists and is verified.
	RequestReset(ctx context.Context, email string) error

	// VerifyCode checks a reset code without consuming it, so a client can
	// confirm the code before submitting the new password.
	VerifyCode(ctx context.Context, email, code string) error

	// ResetPassword consumes the reset code and replaces the password.
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	codes    *otp.Engine
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(userRepo repository.UserRepository, codes *otp.Engine) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		codes:    codes,
	}
}

func (u *passwordResetUsecase) RequestReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Do not reveal that the email is not registered.
			return nil
		}
		return err
	}

	// Unverified accounts get the same silent success as unknown emails.
	if !user.Verified {
		return nil
	}

	_, _, err = u.codes.Issue(ctx, otp.PurposeReset, user.Email)
	return err
}

func (u *passwordResetUsecase) VerifyCode(ctx context.Context, email, code string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	return otp.Check(otp.PurposeReset, user, code)
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	if err := u.codes.Consume(ctx, otp.PurposeReset, user, code); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = u.userRepo.UpdateUserByEmail(ctx, user.Email, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	})
	return err
}

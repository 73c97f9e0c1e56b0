package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/otp"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/repository"
)

// VerificationUsecase defines the business logic for account verification.
type VerificationUsecase interface {
	// SendCode issues a fresh verification code to an unverified account,
	// overwriting any previously issued code.
	SendCode(ctx context.Context, email string) error

	// Verify consumes a verification code and marks the account verified.
	Verify(ctx context.Context, email, code string) error
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyVerified = errors.New("account is already verified")
)

type verificationUsecase struct {
	userRepo repository.UserRepository
	codes    *otp.Engine
}

// NewVerificationUsecase creates a new instance of VerificationUsecase.
func NewVerificationUsecase(userRepo repository.UserRepository, codes *otp.Engine) VerificationUsecase {
	return &verificationUsecase{
		userRepo: userRepo,
		codes:    codes,
	}
}

func (u *verificationUsecase) SendCode(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Verified {
		return ErrAlreadyVerified
	}

	_, _, err = u.codes.Issue(ctx, otp.PurposeVerification, user.Email)
	return err
}

func (u *verificationUsecase) Verify(ctx context.Context, email, code string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	return u.codes.Consume(ctx, otp.PurposeVerification, user, code)
}

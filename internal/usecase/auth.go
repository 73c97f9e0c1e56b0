package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/config"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/model"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/otp"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/repository"
	"github.com/Mahmoud-Sakhy/user-auth-api/shared/auth"
	"github.com/Mahmoud-Sakhy/user-auth-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	Login(ctx context.Context, params LoginParams) (*model.User, string, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name     string
	Age      int
	Email    string
	Gender   string
	Password string
	Role     string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotVerified    = errors.New("account is not verified")
)

type authUsecase struct {
	userRepo repository.UserRepository
	codes    *otp.Engine
	jwtAuth  auth.JWTAuthenticator
	cfg      *config.Config
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	codes *otp.Engine,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		codes:    codes,
		jwtAuth:  jwtAuth,
		cfg:      cfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	role := params.Role
	if role == "" {
		role = model.RoleUser
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Age:          params.Age,
		Email:        params.Email,
		Gender:       params.Gender,
		PasswordHash: passwordHash,
		Role:         role,
		Verified:     false,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	if _, _, err := u.codes.Issue(ctx, otp.PurposeVerification, user.Email); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if !user.Verified {
		return nil, "", ErrUserNotVerified
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	return u.userRepo.ListUsers(ctx, repository.FilterUsersParams{})
}

func (u *authUsecase) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := auth.UserClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.TokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.cfg.TokenIssuer,
			Audience:  jwt.ClaimStrings{u.cfg.TokenIssuer},
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.cfg.JWTSecret)
}

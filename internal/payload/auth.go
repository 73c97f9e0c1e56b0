package payload

import "time"

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=3"`
	Age      int    `json:"age"      validate:"required,gte=18"`
	Email    string `json:"email"    validate:"required,email"`
	Gender   string `json:"gender"   validate:"required,oneof=male female"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type RegisterResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

// PublicUser is the account projection safe to return to callers. It carries
// no credential material and no one-time codes.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type SendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Code        string `json:"code"        validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

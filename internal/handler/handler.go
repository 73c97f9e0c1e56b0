package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/config"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/otp"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/usecase"
	"github.com/Mahmoud-Sakhy/user-auth-api/shared/validator"
)

// AuthHTTPHandler exposes the authentication use cases over HTTP.
type AuthHTTPHandler struct {
	authUsecase          usecase.AuthUsecase
	verificationUsecase  usecase.VerificationUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validator.Validator
	logger               *zerolog.Logger
	cfg                  *config.Config
}

// NewAuthHTTPHandler creates a new AuthHTTPHandler instance.
func NewAuthHTTPHandler(
	authUsecase usecase.AuthUsecase,
	verificationUsecase usecase.VerificationUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	v *validator.Validator,
	logger *zerolog.Logger,
	cfg *config.Config,
) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		authUsecase:          authUsecase,
		verificationUsecase:  verificationUsecase,
		passwordResetUsecase: passwordResetUsecase,
		validator:            v,
		logger:               logger,
		cfg:                  cfg,
	}
}

// RegisterRoutes mounts all authentication endpoints onto the router.
func (h *AuthHTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/users", h.ListUsers)
		r.Post("/send-verification", h.SendVerificationCode)
		r.Post("/verify", h.VerifyCode)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/verify-reset-code", h.VerifyResetCode)
		r.Post("/reset-password", h.ResetPassword)
	})
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (h *AuthHTTPHandler) respondSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func (h *AuthHTTPHandler) respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On failure it writes a 400 response and returns false.
func (h *AuthHTTPHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validator.ValidateStruct(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}

// respondUsecaseError maps usecase sentinel errors to HTTP responses.
// Anything unrecognized is logged and reported as an internal error.
func (h *AuthHTTPHandler) respondUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		h.respondError(w, http.StatusBadRequest, "user already exists")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, usecase.ErrUserNotVerified):
		h.respondError(w, http.StatusForbidden, "account is not verified")
	case errors.Is(err, usecase.ErrUserNotFound):
		h.respondError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, usecase.ErrAlreadyVerified):
		h.respondError(w, http.StatusBadRequest, "account is already verified")
	case errors.Is(err, otp.ErrCodeMismatch):
		h.respondError(w, http.StatusBadRequest, "invalid code")
	case errors.Is(err, otp.ErrCodeExpired):
		h.respondError(w, http.StatusBadRequest, "code has expired")
	default:
		h.logger.Error().Err(err).Msg("unexpected error")
		h.respondError(w, http.StatusInternalServerError, "something went wrong")
	}
}

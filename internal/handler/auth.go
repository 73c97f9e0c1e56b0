package handler

import (
	"net/http"
	"time"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/model"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/payload"
	"github.com/Mahmoud-Sakhy/user-auth-api/internal/usecase"
)

const authCookieName = "token"

func (h *AuthHTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Age:      req.Age,
		Email:    req.Email,
		Gender:   req.Gender,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondSuccess(w, http.StatusCreated,
		"registered successfully, please verify your account with the code sent to your email",
		payload.RegisterResponse{
			ID:         user.ID.Hex(),
			Name:       user.Name,
			Email:      user.Email,
			IsVerified: user.Verified,
		})
}

func (h *AuthHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Production(),
		SameSite: http.SameSiteStrictMode,
	})

	h.respondSuccess(w, http.StatusOK, "logged in successfully", payload.LoginResponse{
		User:  publicUser(user),
		Token: token,
	})
}

func (h *AuthHTTPHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	// Clearing is idempotent, there may be no cookie to begin with.
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cfg.Production(),
		SameSite: http.SameSiteStrictMode,
	})

	h.respondSuccess(w, http.StatusOK, "logged out successfully", nil)
}

func (h *AuthHTTPHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authUsecase.ListUsers(r.Context())
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	if users == nil {
		users = []*model.User{}
	}

	h.respondSuccess(w, http.StatusOK, "", map[string]any{
		"users": users,
		"count": len(users),
	})
}

func publicUser(user *model.User) payload.PublicUser {
	return payload.PublicUser{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Gender:    user.Gender,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

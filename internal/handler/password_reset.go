package handler

import (
	"net/http"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/payload"
)

// The forgot-password response is identical whether or not the email is
// registered, so the endpoint cannot be used to enumerate accounts.
const forgotPasswordMessage = "if this email is registered, a reset code will be sent to it"

func (h *AuthHTTPHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.passwordResetUsecase.RequestReset(r.Context(), req.Email); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondSuccess(w, http.StatusOK, forgotPasswordMessage, nil)
}

func (h *AuthHTTPHandler) VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyResetCodeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.passwordResetUsecase.VerifyCode(r.Context(), req.Email, req.Code); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondSuccess(w, http.StatusOK, "reset code is valid", nil)
}

func (h *AuthHTTPHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondSuccess(w, http.StatusOK, "password changed successfully", nil)
}

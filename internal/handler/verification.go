package handler

import (
	"net/http"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/payload"
)

func (h *AuthHTTPHandler) SendVerificationCode(w http.ResponseWriter, r *http.Request) {
	var req payload.SendVerificationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.verificationUsecase.SendCode(r.Context(), req.Email); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondSuccess(w, http.StatusOK, "verification code sent to your email", nil)
}

func (h *AuthHTTPHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyCodeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.verificationUsecase.Verify(r.Context(), req.Email, req.Code); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondSuccess(w, http.StatusOK, "account verified successfully", nil)
}

package token

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/account"
	"github.com/simskyeconomy/simsky-core/internal/api"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

type resetRequestBody struct {
	Identifier string `json:"identifier"`
}

func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" {
		api.WriteError(w, http.StatusBadRequest, "identifier is required")
		return
	}

	err := h.service.RequestReset(r.Context(), req.Identifier)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound), errors.Is(err, account.ErrProfileNotFound):
			api.WriteError(w, http.StatusNotFound, "username or email not found")
		case errors.Is(err, account.ErrLocked):
			api.WriteJSON(w, http.StatusLocked, map[string]interface{}{
				"success":        false,
				"account_locked": true,
				"error":          "your account is locked; please contact support to proceed with password reset",
			})
		default:
			h.log.Error("password reset request failed", zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) CheckPasswordReset(w http.ResponseWriter, r *http.Request) {
	h.writePeekResult(w, h.service.PeekReset(chi.URLParam(r, "token")), "reset")
}

type completeResetBody struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *Handler) CompletePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req completeResetBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.service.CompleteReset(r.Context(), chi.URLParam(r, "token"), req.NewPassword, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch):
			api.WriteError(w, http.StatusBadRequest, "passwords do not match")
		case errors.Is(err, ErrNotFound):
			api.WriteError(w, http.StatusNotFound, "invalid reset link")
		case errors.Is(err, ErrExpired):
			api.WriteError(w, http.StatusGone, "this reset link has expired")
		default:
			h.log.Error("password reset failed", zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) CheckEmailVerification(w http.ResponseWriter, r *http.Request) {
	h.writePeekResult(w, h.service.PeekVerification(chi.URLParam(r, "token")), "verification")
}

func (h *Handler) CompleteEmailVerification(w http.ResponseWriter, r *http.Request) {
	err := h.service.CompleteVerification(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			api.WriteError(w, http.StatusNotFound, "invalid verification link")
		case errors.Is(err, ErrExpired):
			api.WriteError(w, http.StatusGone, "this verification link has expired")
		default:
			h.log.Error("email verification failed", zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseUint(chi.URLParam(r, "accountID"), 10, 32)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	if err := h.service.SendVerification(r.Context(), uint(accountID)); err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound), errors.Is(err, account.ErrProfileNotFound):
			api.WriteError(w, http.StatusNotFound, "account not found")
		default:
			h.log.Error("resend verification failed", zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) writePeekResult(w http.ResponseWriter, err error, kind string) {
	switch {
	case err == nil:
		api.WriteJSON(w, http.StatusOK, map[string]interface{}{"valid": true})
	case errors.Is(err, ErrNotFound):
		api.WriteError(w, http.StatusNotFound, "invalid "+kind+" link")
	case errors.Is(err, ErrExpired):
		api.WriteError(w, http.StatusGone, "this "+kind+" link has expired")
	default:
		h.log.Error("token check failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

package auth

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

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

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Authenticate(r.Context(), req.Identifier, req.Password, RequestContext{
		SourceIP: ClientIP(r),
	})
	if err != nil {
		var notVerified *EmailNotVerifiedError
		switch {
		case errors.Is(err, ErrValidation):
			api.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrInvalidCredentials):
			api.WriteError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
		case errors.Is(err, account.ErrLocked):
			api.WriteJSON(w, http.StatusLocked, map[string]interface{}{
				"success":        false,
				"account_locked": true,
				"error":          "your account is locked due to multiple failed login attempts; please contact support to unlock it",
			})
		case errors.As(err, &notVerified):
			api.WriteJSON(w, http.StatusForbidden, map[string]interface{}{
				"success":            false,
				"email_not_verified": true,
				"account_id":         notVerified.AccountID,
				"error":              "your email is not verified; check your inbox or request a new verification email",
			})
		default:
			h.log.Error("login failed", zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"token":      result.SessionToken,
		"account_id": result.AccountID,
		"profile_id": result.ProfileID,
	})
}

// ClientIP extracts the request source address, honouring proxies.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

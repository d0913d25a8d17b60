package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

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

type signupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acct, err := h.service.Signup(r.Context(), SignupRequest{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			api.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken):
			api.WriteError(w, http.StatusConflict, err.Error())
		default:
			h.log.Error("signup failed", zap.String("username", req.Username), zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	h.log.Info("signup completed", zap.String("username", acct.Username))
	api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"account_id": acct.ID,
	})
}

package reputation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/account"
	"github.com/simskyeconomy/simsky-core/internal/api"
	"github.com/simskyeconomy/simsky-core/internal/auth"
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

type eventResponse struct {
	Ref         string `json:"ref"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	ScoreDate   string `json:"score_date"`
	Reason      string `json:"reason"`
}

func (h *Handler) GetStanding(w http.ResponseWriter, r *http.Request) {
	profileID, err := strconv.ParseUint(chi.URLParam(r, "profileID"), 10, 32)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	requester, err := auth.CurrentAccountID(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusUnauthorized, "session required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	period := r.URL.Query().Get("period")

	standing, err := h.service.ComputeStanding(uint(profileID), requester, period, page)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			api.WriteError(w, http.StatusForbidden, "you are not authorized to view this page")
		case errors.Is(err, account.ErrProfileNotFound):
			api.WriteError(w, http.StatusNotFound, "profile not found")
		default:
			h.log.Error("failed to compute reputation standing",
				zap.Uint64("profile_id", profileID),
				zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	events := make([]eventResponse, 0, len(standing.Events))
	for _, e := range standing.Events {
		events = append(events, eventResponse{
			Ref:         e.Ref,
			Type:        e.Type.Name,
			Description: e.Type.Description,
			Points:      e.Type.Points,
			ScoreDate:   e.ScoreDate.Format(time.DateOnly),
			Reason:      e.Reason,
		})
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total_score":       standing.TotalScore,
		"grade":             standing.Grade,
		"current_min_score": standing.CurrentMinScore,
		"next_min_score":    standing.NextMinScore,
		"progress_percent":  standing.ProgressPercent,
		"score_30_days":     standing.Score30,
		"score_60_days":     standing.Score60,
		"score_90_days":     standing.Score90,
		"events":            events,
		"page":              standing.Page,
		"total_pages":       standing.TotalPages,
		"period":            standing.Period,
	})
}

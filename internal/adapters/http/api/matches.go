package api

import (
	"net/http"

	"github.com/okian/pitchlens/internal/domain/accumulate"
	"github.com/okian/pitchlens/pkg/logger"
)

// MatchHandler serves per-match analytics.
type MatchHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps Dependencies, log logger.Logger) *MatchHandler {
	return &MatchHandler{deps: deps, log: log}
}

// HandleAnalytics handles GET /matches/{id}/analytics.
func (h *MatchHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.deps.AggregateMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type xgResponse struct {
	MatchID string `json:"matchId"`
	accumulate.ShotMap
}

// HandleXG handles GET /matches/{id}/xg: the shot map with per-shot xG and
// the per-team summaries.
func (h *MatchHandler) HandleXG(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	a, err := h.deps.AggregateMatch(r.Context(), id)
	if err != nil {
		fail(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, xgResponse{MatchID: id, ShotMap: a.Shots})
}

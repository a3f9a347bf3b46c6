package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/pkg/logger"
)

// CompareHandler serves two-match comparisons and cross-match player totals.
type CompareHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps Dependencies, log logger.Logger) *CompareHandler {
	return &CompareHandler{deps: deps, log: log}
}

// HandleCompare handles GET /compare?m1=&m2=.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	m1, m2 := strings.TrimSpace(q.Get("m1")), strings.TrimSpace(q.Get("m2"))
	if m1 == "" || m2 == "" {
		fail(r.Context(), w, h.log, fmt.Errorf("%w: m1 and m2 are required", ErrBadRequest))
		return
	}
	res, err := h.deps.CompareMatches(r.Context(), m1, m2)
	if err != nil {
		fail(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type playersResponse struct {
	Matches []string            `json:"matches"`
	Players []model.PlayerStats `json:"players"`
}

// HandlePlayers handles GET /players?match=a&match=b: per-player totals
// summed across the listed matches.
func (h *CompareHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	ids := matchIDs(r)
	if len(ids) == 0 {
		fail(r.Context(), w, h.log, fmt.Errorf("%w: at least one match is required", ErrBadRequest))
		return
	}
	players, err := h.deps.AggregatePlayers(r.Context(), ids)
	if err != nil {
		fail(r.Context(), w, h.log, err)
		return
	}
	if players == nil {
		players = []model.PlayerStats{}
	}
	writeJSON(w, http.StatusOK, playersResponse{Matches: ids, Players: players})
}

// matchIDs reads repeated and comma-separated match query values, keeping
// the first occurrence of each id.
func matchIDs(r *http.Request) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range r.URL.Query()["match"] {
		for _, id := range strings.Split(v, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

package api

import (
	"net/http"

	"github.com/okian/pitchlens/pkg/logger"
)

// WorkTimeHandler serves data-entry work time.
type WorkTimeHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewWorkTimeHandler creates a new work time handler.
func NewWorkTimeHandler(deps Dependencies, log logger.Logger) *WorkTimeHandler {
	return &WorkTimeHandler{deps: deps, log: log}
}

// HandleWorkTime handles GET /worktime with optional match filters.
func (h *WorkTimeHandler) HandleWorkTime(w http.ResponseWriter, r *http.Request) {
	report, err := h.deps.WorkTime(r.Context(), matchIDs(r))
	if err != nil {
		fail(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/pitchlens/internal/adapters/repository"
	"github.com/okian/pitchlens/internal/domain/aggregate"
	"github.com/okian/pitchlens/internal/domain/compare"
	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AggregateMatch(ctx context.Context, matchID string) (aggregate.MatchAnalytics, error)
	AggregatePlayers(ctx context.Context, matchIDs []string) ([]model.PlayerStats, error)
	CompareMatches(ctx context.Context, m1, m2 string) (compare.Result, error)

	// WorkTime reports every stored match when matchIDs is empty.
	WorkTime(ctx context.Context, matchIDs []string) (aggregate.WorkTimeReport, error)
}

// Server wires HTTP routes for the analytics API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	matchHandler    *MatchHandler
	compareHandler  *CompareHandler
	workTimeHandler *WorkTimeHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.OrNop()
	}
	log = log.Named("api")
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		matchHandler:    NewMatchHandler(deps, log),
		compareHandler:  NewCompareHandler(deps, log),
		workTimeHandler: NewWorkTimeHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /matches/{id}/analytics", MetricsMiddleware(s.matchHandler.HandleAnalytics, "analytics"))
	mux.HandleFunc("GET /matches/{id}/xg", MetricsMiddleware(s.matchHandler.HandleXG, "xg"))
	mux.HandleFunc("GET /compare", MetricsMiddleware(s.compareHandler.HandleCompare, "compare"))
	mux.HandleFunc("GET /players", MetricsMiddleware(s.compareHandler.HandlePlayers, "players"))
	mux.HandleFunc("GET /worktime", MetricsMiddleware(s.workTimeHandler.HandleWorkTime, "worktime"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// statusClientClosed is the de facto status for a request the client gave up on.
const statusClientClosed = 499

// classify maps a domain error to a status and an error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, compare.ErrMissingID):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, aggregate.ErrCanceled), errors.Is(err, context.Canceled):
		return statusClientClosed, "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, aggregate.ErrFetchFailed), errors.Is(err, compare.ErrHalfStats):
		return http.StatusBadGateway, "store_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// fail logs err and writes the mapped error response.
func fail(ctx context.Context, w http.ResponseWriter, log logger.Logger, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.String("code", code), logger.Error(err))
	} else {
		log.Debug(ctx, "request rejected", logger.String("code", code), logger.Error(err))
	}
	writeError(w, status, code, err)
}

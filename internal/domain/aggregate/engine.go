// Package aggregate pulls paginated events from an event store and folds them
// through the accumulators in a single pass.
package aggregate

import (
	"context"
	"errors"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/pitchlens/internal/domain/accumulate"
	"github.com/okian/pitchlens/internal/domain/dedupe"
	"github.com/okian/pitchlens/internal/domain/geometry"
	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/internal/domain/worktime"
	"github.com/okian/pitchlens/pkg/logger"
	"github.com/okian/pitchlens/pkg/metrics"
)

// DefaultPageSize is the number of events requested per page.
const DefaultPageSize = 1000

// EventStore is the read side the engine depends on. FetchEvents must return
// events in a stable order so that offset pagination is deterministic.
type EventStore interface {
	FetchEvents(ctx context.Context, matchID string, q model.EventQuery) ([]model.MatchEvent, error)
	FetchMatchMetadata(ctx context.Context, matchID string) (model.MatchMetadata, error)
	FetchPlayerRoster(ctx context.Context, teamID string) ([]model.Player, error)
}

// Engine computes match analytics. It holds no state between calls and is
// safe for concurrent use.
type Engine struct {
	store         EventStore
	pageSize      int
	log           logger.Logger
	pitch         geometry.Pitch
	ratios        accumulate.SetPieceRatios
	maxConcurrent int
	worktime      *worktime.Analyzer
}

// New creates an Engine reading from store.
func New(store EventStore, opts ...Option) *Engine {
	e := &Engine{
		store:         store,
		pageSize:      DefaultPageSize,
		log:           logger.OrNop(),
		pitch:         geometry.DefaultPitch(),
		ratios:        accumulate.DefaultSetPieceRatios(),
		maxConcurrent: 4,
		worktime:      worktime.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("aggregate")
	return e
}

// FetchAll pages through the events of a match until a page comes back short.
// The context is checked before every page; on cancellation or any fetch
// error nothing fetched so far is returned.
func (e *Engine) FetchAll(ctx context.Context, matchID string, q model.EventQuery) ([]model.MatchEvent, error) {
	var all []model.MatchEvent
	q.Offset = 0
	q.Limit = e.pageSize
	for {
		if err := ctx.Err(); err != nil {
			return nil, CanceledError("fetch_events", matchID, err)
		}

		start := time.Now()
		page, err := e.store.FetchEvents(ctx, matchID, q)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, CanceledError("fetch_events", matchID, ctxErr)
			}
			metrics.RecordErrorByComponent("aggregate", "fetch_events")
			return nil, FetchError("fetch_events", matchID, err)
		}
		metrics.RecordPageFetched(len(page))
		e.log.Debug(ctx, "fetched page",
			logger.String("match", matchID),
			logger.Int("offset", q.Offset),
			logger.Int("events", len(page)),
			logger.Duration("took", time.Since(start)),
		)

		all = append(all, page...)
		if len(page) < q.Limit {
			return all, nil
		}
		q.Offset += len(page)
	}
}

// AggregateMatch loads metadata, both rosters and every event of a match and
// returns all derived views.
func (e *Engine) AggregateMatch(ctx context.Context, matchID string) (MatchAnalytics, error) {
	start := time.Now()
	out, err := e.aggregateMatch(ctx, matchID)
	elapsed := float64(time.Since(start).Milliseconds())

	switch {
	case err == nil:
		metrics.RecordAggregation("ok", elapsed)
	case errors.Is(err, ErrCanceled):
		metrics.RecordAggregation("canceled", elapsed)
	default:
		metrics.RecordAggregation("failed", elapsed)
		e.log.Error(ctx, "aggregation failed", logger.String("match", matchID), logger.Error(err))
	}
	return out, err
}

func (e *Engine) aggregateMatch(ctx context.Context, matchID string) (MatchAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return MatchAnalytics{}, CanceledError("fetch_metadata", matchID, err)
	}
	meta, err := e.store.FetchMatchMetadata(ctx, matchID)
	if err != nil {
		return MatchAnalytics{}, e.collaboratorError(ctx, "fetch_metadata", matchID, err)
	}
	if meta.MatchID == "" {
		meta.MatchID = matchID
	}

	var players []model.Player
	for _, teamID := range []string{meta.HomeTeamID, meta.AwayTeamID} {
		if teamID == "" {
			continue
		}
		roster, err := e.store.FetchPlayerRoster(ctx, teamID)
		if err != nil {
			return MatchAnalytics{}, e.collaboratorError(ctx, "fetch_roster", matchID, err)
		}
		for _, p := range roster {
			if p.TeamID == "" {
				p.TeamID = teamID
			}
			players = append(players, p)
		}
	}

	events, err := e.FetchAll(ctx, matchID, model.EventQuery{})
	if err != nil {
		return MatchAnalytics{}, err
	}

	out := e.AggregateEvents(meta, players, events)

	d := out.Diagnostics
	metrics.RecordEventsFolded(d.Folded)
	metrics.RecordEventsDuplicate(d.Duplicates)
	metrics.RecordEventsRejected("invalid_coordinates", d.InvalidCoordinates)
	metrics.RecordEventsRejected("unknown_type", d.UnknownType)
	metrics.RecordEventsRejected("missing_identifier", d.MissingIdentifiers)
	metrics.RecordEventsRejected("invalid_half", d.InvalidHalf)
	metrics.RecordEventsUnattributed(d.Unattributed)
	metrics.RecordShotsScored(len(out.Shots.Shots))

	e.log.Info(ctx, "match aggregated",
		logger.String("match", matchID),
		logger.Int("fetched", d.Fetched),
		logger.Int("folded", d.Folded),
		logger.Int("rejected", d.Rejected()),
		logger.Int("duplicates", d.Duplicates),
	)
	return out, nil
}

func (e *Engine) collaboratorError(ctx context.Context, op, matchID string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return CanceledError(op, matchID, ctxErr)
	}
	metrics.RecordErrorByComponent("aggregate", op)
	return FetchError(op, matchID, err)
}

// AggregateEvents folds events into every view. Events are sorted by
// (CreatedAt, ID), duplicate ids are folded once and malformed events are
// skipped and counted. The input slice is not modified.
func (e *Engine) AggregateEvents(meta model.MatchMetadata, players []model.Player, events []model.MatchEvent) MatchAnalytics {
	diag := Diagnostics{Fetched: len(events)}

	sorted := make([]model.MatchEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	red := newReducers(e.ratios)
	rt := newRouter(red.folders())
	fc := accumulate.NewFoldContext(meta, e.pitch, players...)
	seen := dedupe.New(dedupe.WithCapacity(len(sorted)))

	for i := range sorted {
		ev := &sorted[i]
		if err := ev.Validate(); err != nil {
			countRejected(&diag, err)
			e.log.Debug(context.Background(), "skipping malformed event",
				logger.String("match", meta.MatchID), logger.Error(err))
			continue
		}
		if seen.SeenAndRecord(ev.ID) {
			diag.Duplicates++
			continue
		}
		if !fc.Bind(ev) {
			diag.Unattributed++
		}
		for _, f := range rt.route(ev.Type) {
			f.Fold(fc, ev)
		}
		diag.Folded++
	}

	return red.finalize(meta, diag)
}

func countRejected(d *Diagnostics, err error) {
	switch {
	case errors.Is(err, model.ErrMissingIdentifier):
		d.MissingIdentifiers++
	case errors.Is(err, model.ErrUnknownEventType):
		d.UnknownType++
	case errors.Is(err, model.ErrInvalidHalf):
		d.InvalidHalf++
	default:
		d.InvalidCoordinates++
	}
}

// AggregatePlayers aggregates every match with bounded parallelism and merges
// the per-player totals in argument order. Any failed match fails the call.
func (e *Engine) AggregatePlayers(ctx context.Context, matchIDs []string) ([]model.PlayerStats, error) {
	results := make([][]model.PlayerStats, len(matchIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrent)
	for i, id := range matchIDs {
		g.Go(func() error {
			a, err := e.AggregateMatch(gctx, id)
			if err != nil {
				return err
			}
			results[i] = a.Players.All
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return MergePlayers(results...), nil
}

// MergePlayers sums per-player stats across matches. Identity comes from the
// first record seen for a player. The result is ordered by team name, jersey
// number, name and id.
func MergePlayers(sets ...[]model.PlayerStats) []model.PlayerStats {
	index := make(map[string]int)
	var out []model.PlayerStats
	for _, set := range sets {
		for _, s := range set {
			i, ok := index[s.PlayerID]
			if !ok {
				index[s.PlayerID] = len(out)
				out = append(out, s)
				continue
			}
			out[i].Add(s)
		}
	}
	SortPlayers(out)
	return out
}

// SortPlayers orders stats by team name, jersey number, name and id.
func SortPlayers(list []model.PlayerStats) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		if a.JerseyNumber != b.JerseyNumber {
			return a.JerseyNumber < b.JerseyNumber
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.PlayerID < b.PlayerID
	})
}

// MatchWorkTime is the active/break split of one match.
type MatchWorkTime struct {
	MatchID string `json:"matchId"`
	Events  int    `json:"events"`
	worktime.Stats
}

// WorkTimeReport holds per-match and per-day work time.
type WorkTimeReport struct {
	ThresholdMs int64               `json:"thresholdMs"`
	Matches     []MatchWorkTime     `json:"matches"`
	Days        []worktime.DayStats `json:"days"`
}

// WorkTime fetches the ingestion timestamps of each match and segments them.
// Matches are fetched sequentially in argument order.
func (e *Engine) WorkTime(ctx context.Context, matchIDs []string) (WorkTimeReport, error) {
	report := WorkTimeReport{ThresholdMs: e.worktime.Threshold(), Matches: make([]MatchWorkTime, 0, len(matchIDs))}
	timelines := make([]worktime.Timeline, 0, len(matchIDs))
	for _, id := range matchIDs {
		events, err := e.FetchAll(ctx, id, model.EventQuery{})
		if err != nil {
			return WorkTimeReport{}, err
		}
		ts := model.Timestamps(events)
		timelines = append(timelines, worktime.Timeline{MatchID: id, Timestamps: ts})
		report.Matches = append(report.Matches, MatchWorkTime{MatchID: id, Events: len(ts), Stats: e.worktime.Segment(ts)})
	}
	report.Days = e.worktime.ByDay(timelines)
	return report, nil
}

// Package compare lines up per-player stats from two independent sources.
package compare

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/okian/pitchlens/internal/domain/aggregate"
	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/pkg/logger"
	"github.com/okian/pitchlens/pkg/metrics"
)

// Stats sources reported by ResolveMatchStats.
const (
	SourceStored     = "stored"
	SourceRecomputed = "recomputed"
)

// PlayerComparison is one player's stats from both sides.
type PlayerComparison struct {
	PlayerID     string            `json:"playerId"`
	Name         string            `json:"name"`
	JerseyNumber int               `json:"jerseyNumber"`
	TeamName     string            `json:"teamName"`
	Match1Stats  model.PlayerStats `json:"match1Stats"`
	Match2Stats  model.PlayerStats `json:"match2Stats"`
}

// Merge unions two stat sets by player id. A player missing from one side gets
// an all-zero record carrying only its identity.
func Merge(a, b []model.PlayerStats) []PlayerComparison {
	index := make(map[string]int)
	var out []PlayerComparison

	add := func(s model.PlayerStats, second bool) {
		i, ok := index[s.PlayerID]
		if !ok {
			i = len(out)
			index[s.PlayerID] = i
			out = append(out, PlayerComparison{
				PlayerID:     s.PlayerID,
				Name:         s.Name,
				JerseyNumber: s.JerseyNumber,
				TeamName:     s.TeamName,
			})
		}
		if second {
			out[i].Match2Stats = s
		} else {
			out[i].Match1Stats = s
		}
	}
	for _, s := range a {
		add(s, false)
	}
	for _, s := range b {
		add(s, true)
	}

	for i := range out {
		c := &out[i]
		if c.Match1Stats.PlayerID == "" {
			c.Match1Stats = empty(c)
		}
		if c.Match2Stats.PlayerID == "" {
			c.Match2Stats = empty(c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
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
	return out
}

func empty(c *PlayerComparison) model.PlayerStats {
	return model.PlayerStats{PlayerID: c.PlayerID, Name: c.Name, JerseyNumber: c.JerseyNumber, TeamName: c.TeamName}
}

// HalfStatsSource serves legacy pre-aggregated per-half rows.
type HalfStatsSource interface {
	FetchHalfStats(ctx context.Context, matchID string) ([]model.PlayerHalfStats, error)
}

// Aggregator recomputes a match from raw events.
type Aggregator interface {
	AggregateMatch(ctx context.Context, matchID string) (aggregate.MatchAnalytics, error)
}

// MatchStats is the resolved per-player stats of one match.
type MatchStats struct {
	MatchID string              `json:"matchId"`
	Source  string              `json:"source"`
	Players []model.PlayerStats `json:"players"`
}

// Result is a finished two-match comparison.
type Result struct {
	Match1  MatchStats         `json:"match1"`
	Match2  MatchStats         `json:"match2"`
	Players []PlayerComparison `json:"players"`
}

// Comparer resolves stats for matches and compares them.
type Comparer struct {
	halves HalfStatsSource
	engine Aggregator
	meta   MetadataSource
	log    logger.Logger
}

// MetadataSource fills team names and player identity on stored rows.
type MetadataSource interface {
	FetchMatchMetadata(ctx context.Context, matchID string) (model.MatchMetadata, error)
	FetchPlayerRoster(ctx context.Context, teamID string) ([]model.Player, error)
}

// NewComparer wires a Comparer.
func NewComparer(halves HalfStatsSource, meta MetadataSource, engine Aggregator, log logger.Logger) *Comparer {
	if log == nil {
		log = logger.OrNop()
	}
	return &Comparer{halves: halves, engine: engine, meta: meta, log: log.Named("compare")}
}

// ResolveMatchStats sums stored per-half rows per player. When the match has
// no stored rows it falls back to a full recomputation from raw events. Both
// paths return the same schema.
func (c *Comparer) ResolveMatchStats(ctx context.Context, matchID string) (MatchStats, error) {
	if matchID == "" {
		return MatchStats{}, ErrMissingID
	}
	rows, err := c.halves.FetchHalfStats(ctx, matchID)
	if err != nil {
		return MatchStats{}, storeError(ctx, "fetch_half_stats", matchID, fmt.Errorf("%w: %w", ErrHalfStats, err))
	}

	if len(rows) == 0 {
		c.log.Debug(ctx, "no stored half stats, recomputing", logger.String("match", matchID))
		a, err := c.engine.AggregateMatch(ctx, matchID)
		if err != nil {
			return MatchStats{}, err
		}
		metrics.RecordComparisonSource(SourceRecomputed)
		players := append([]model.PlayerStats{}, a.Players.All...)
		aggregate.SortPlayers(players)
		return MatchStats{MatchID: matchID, Source: SourceRecomputed, Players: players}, nil
	}

	players, err := c.fromRows(ctx, matchID, rows)
	if err != nil {
		return MatchStats{}, err
	}
	metrics.RecordComparisonSource(SourceStored)
	return MatchStats{MatchID: matchID, Source: SourceStored, Players: players}, nil
}

func (c *Comparer) fromRows(ctx context.Context, matchID string, rows []model.PlayerHalfStats) ([]model.PlayerStats, error) {
	meta, err := c.meta.FetchMatchMetadata(ctx, matchID)
	if err != nil {
		return nil, storeError(ctx, "fetch_metadata", matchID, err)
	}
	roster := make(map[string]model.Player)
	for _, teamID := range []string{meta.HomeTeamID, meta.AwayTeamID} {
		if teamID == "" {
			continue
		}
		players, err := c.meta.FetchPlayerRoster(ctx, teamID)
		if err != nil {
			return nil, storeError(ctx, "fetch_roster", matchID, fmt.Errorf("team %s: %w", teamID, err))
		}
		for _, p := range players {
			if p.TeamID == "" {
				p.TeamID = teamID
			}
			roster[p.ID] = p
		}
	}

	// Stored rows do not distinguish appearances from halves.
	perPlayer := make([][]model.PlayerStats, 0, len(rows))
	for _, r := range rows {
		s := r.PlayerStats
		if p, ok := roster[s.PlayerID]; ok {
			s.Name, s.JerseyNumber, s.TeamID = p.Name, p.JerseyNumber, p.TeamID
		}
		s.TeamName = meta.TeamName(s.TeamID)
		s.Matches = 0
		perPlayer = append(perPlayer, []model.PlayerStats{s})
	}
	merged := aggregate.MergePlayers(perPlayer...)
	for i := range merged {
		merged[i].Matches = 1
	}
	return merged, nil
}

// storeError gives stored-row lookups the same error shape as the engine.
func storeError(ctx context.Context, op, matchID string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return aggregate.CanceledError(op, matchID, ctxErr)
	}
	metrics.RecordErrorByComponent("compare", op)
	return aggregate.FetchError(op, matchID, err)
}

// CompareMatches resolves both matches in parallel and merges them. Either
// side failing fails the comparison.
func (c *Comparer) CompareMatches(ctx context.Context, m1, m2 string) (Result, error) {
	if m1 == "" || m2 == "" {
		metrics.RecordComparison("invalid")
		return Result{}, ErrMissingID
	}

	var r Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.ResolveMatchStats(gctx, m1)
		r.Match1 = s
		return err
	})
	g.Go(func() error {
		s, err := c.ResolveMatchStats(gctx, m2)
		r.Match2 = s
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.RecordComparison("failed")
		c.log.Warn(ctx, "comparison failed", logger.String("m1", m1), logger.String("m2", m2), logger.Error(err))
		return Result{}, err
	}

	r.Players = Merge(r.Match1.Players, r.Match2.Players)
	metrics.RecordComparison("ok")
	return r, nil
}

package testevents

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/pitchlens/internal/adapters/repository"
	"github.com/okian/pitchlens/internal/domain/aggregate"
	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/pkg/logger"
)

// Seed writes ds to store. The first legacy matches also get per-half rows,
// derived from their events the way a pre-aggregating pipeline would have
// stored them.
func Seed(ctx context.Context, store repository.Store, ds Dataset, legacy int) (Stats, error) {
	start := time.Now()
	log := logger.OrNop().Named("seed")

	if err := store.SavePlayers(ctx, ds.Players); err != nil {
		return Stats{}, fmt.Errorf("%w: players: %w", ErrSeed, err)
	}
	for _, m := range ds.Matches {
		if err := store.SaveMatch(ctx, m); err != nil {
			return Stats{}, fmt.Errorf("%w: match %s: %w", ErrSeed, m.MatchID, err)
		}
	}
	if err := store.SaveEvents(ctx, ds.Events); err != nil {
		return Stats{}, fmt.Errorf("%w: events: %w", ErrSeed, err)
	}

	stats := Stats{Matches: len(ds.Matches), Players: len(ds.Players), Events: len(ds.Events)}
	phases := make(map[string]struct{})
	for _, e := range ds.Events {
		if e.PhaseID != "" {
			phases[e.PhaseID] = struct{}{}
		}
	}
	stats.Phases = len(phases)

	engine := aggregate.New(store, aggregate.WithLogger(log))
	for _, m := range ds.Matches[:min(legacy, len(ds.Matches))] {
		a, err := engine.AggregateMatch(ctx, m.MatchID)
		if err != nil {
			return Stats{}, fmt.Errorf("%w: half stats for %s: %w", ErrSeed, m.MatchID, err)
		}
		rows := HalfRows(m.MatchID, a.Players)
		if err := store.SaveHalfStats(ctx, rows); err != nil {
			return Stats{}, fmt.Errorf("%w: half stats for %s: %w", ErrSeed, m.MatchID, err)
		}
		stats.HalfStats += len(rows)
	}

	stats.Duration = time.Since(start)
	log.Info(ctx, "seeded event store",
		logger.Int("matches", stats.Matches),
		logger.Int("players", stats.Players),
		logger.Int("events", stats.Events),
		logger.Int("halfStats", stats.HalfStats),
		logger.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// HalfRows flattens per-half player stats into stored rows. Identity fields
// are left out; readers restore them from the roster.
func HalfRows(matchID string, players model.Scoped[[]model.PlayerStats]) []model.PlayerHalfStats {
	var rows []model.PlayerHalfStats
	for half, list := range [][]model.PlayerStats{players.FirstHalf, players.SecondHalf} {
		for _, s := range list {
			s.Name, s.TeamName, s.JerseyNumber = "", "", 0
			rows = append(rows, model.PlayerHalfStats{MatchID: matchID, Half: half + 1, PlayerStats: s})
		}
	}
	return rows
}

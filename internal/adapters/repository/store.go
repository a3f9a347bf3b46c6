// Package repository holds the event store adapters: SQLite and in-memory
// backends plus retrying and caching decorators.
package repository

import (
	"context"
	"time"

	"github.com/okian/pitchlens/internal/domain/model"
)

// MatchSummary is a listing row for a stored match.
type MatchSummary struct {
	MatchID      string    `json:"matchId"`
	HomeTeamID   string    `json:"homeTeamId"`
	AwayTeamID   string    `json:"awayTeamId"`
	HomeTeamName string    `json:"homeTeamName"`
	AwayTeamName string    `json:"awayTeamName"`
	Events       int       `json:"events"`
	FirstEventAt time.Time `json:"firstEventAt"`
}

// Reader is the read side consumed by the analytics engine and comparisons.
type Reader interface {
	// FetchEvents returns one page of a match's events ordered by
	// (created_at, id). Limit must be positive.
	FetchEvents(ctx context.Context, matchID string, q model.EventQuery) ([]model.MatchEvent, error)

	// FetchMatchMetadata returns ErrNotFound for unknown matches.
	FetchMatchMetadata(ctx context.Context, matchID string) (model.MatchMetadata, error)

	// FetchPlayerRoster returns a team's players ordered by jersey number.
	// An unknown team has an empty roster.
	FetchPlayerRoster(ctx context.Context, teamID string) ([]model.Player, error)

	// FetchHalfStats returns legacy per-half rows; zero rows is not an error.
	FetchHalfStats(ctx context.Context, matchID string) ([]model.PlayerHalfStats, error)

	// ListMatches returns every stored match ordered by id.
	ListMatches(ctx context.Context) ([]MatchSummary, error)
}

// Writer seeds the store. Saves replace rows with the same key.
type Writer interface {
	SaveMatch(ctx context.Context, m model.MatchMetadata) error
	SavePlayers(ctx context.Context, players []model.Player) error
	SaveEvents(ctx context.Context, events []model.MatchEvent) error
	SaveHalfStats(ctx context.Context, rows []model.PlayerHalfStats) error
}

// Store is a full read/write backend.
type Store interface {
	Reader
	Writer
	Close() error
}

func validateQuery(q model.EventQuery) error {
	if q.Limit <= 0 || q.Offset < 0 {
		return ErrInvalidLimit
	}
	return nil
}

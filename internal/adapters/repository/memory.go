package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/okian/pitchlens/internal/domain/model"
)

// MemoryStore keeps everything in maps. Ordering matches SQLiteStore.
type MemoryStore struct {
	mu      sync.RWMutex
	matches map[string]model.MatchMetadata
	players map[string]model.Player
	events  map[string]map[string]model.MatchEvent // match id -> event id -> event
	halves  map[string][]model.PlayerHalfStats
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		matches: make(map[string]model.MatchMetadata),
		players: make(map[string]model.Player),
		events:  make(map[string]map[string]model.MatchEvent),
		halves:  make(map[string][]model.PlayerHalfStats),
	}
}

// FetchEvents implements Reader.
func (s *MemoryStore) FetchEvents(ctx context.Context, matchID string, q model.EventQuery) ([]model.MatchEvent, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]model.MatchEvent, 0, len(s.events[matchID]))
	for _, e := range s.events[matchID] {
		if s.matchesQuery(&e, q) {
			filtered = append(filtered, e)
		}
	}
	sortEvents(filtered)

	if q.Offset >= len(filtered) {
		return []model.MatchEvent{}, nil
	}
	end := min(q.Offset+q.Limit, len(filtered))
	return filtered[q.Offset:end], nil
}

func (s *MemoryStore) matchesQuery(e *model.MatchEvent, q model.EventQuery) bool {
	if len(q.EventTypes) > 0 && !slices.Contains(q.EventTypes, e.Type) {
		return false
	}
	if q.PlayerID != "" && e.PlayerID != q.PlayerID {
		return false
	}
	if q.TeamID != "" {
		team := e.TeamID
		if p, ok := s.players[e.PlayerID]; ok && p.TeamID != "" {
			team = p.TeamID
		}
		if team != q.TeamID {
			return false
		}
	}
	return true
}

func sortEvents(events []model.MatchEvent) {
	sort.Slice(events, func(i, j int) bool {
		a, b := &events[i], &events[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// FetchMatchMetadata implements Reader.
func (s *MemoryStore) FetchMatchMetadata(_ context.Context, matchID string) (model.MatchMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[matchID]
	if !ok {
		return model.MatchMetadata{}, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	return m, nil
}

// FetchPlayerRoster implements Reader.
func (s *MemoryStore) FetchPlayerRoster(_ context.Context, teamID string) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Player{}
	for _, p := range s.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	sortRoster(out)
	return out, nil
}

func sortRoster(players []model.Player) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].JerseyNumber != players[j].JerseyNumber {
			return players[i].JerseyNumber < players[j].JerseyNumber
		}
		return players[i].ID < players[j].ID
	})
}

// FetchHalfStats implements Reader.
func (s *MemoryStore) FetchHalfStats(_ context.Context, matchID string) ([]model.PlayerHalfStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.PlayerHalfStats{}, s.halves[matchID]...), nil
}

// ListMatches implements Reader.
func (s *MemoryStore) ListMatches(_ context.Context) ([]MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MatchSummary, 0, len(s.matches))
	for id, m := range s.matches {
		sum := MatchSummary{
			MatchID: id, HomeTeamID: m.HomeTeamID, AwayTeamID: m.AwayTeamID,
			HomeTeamName: m.HomeTeamName, AwayTeamName: m.AwayTeamName,
			Events: len(s.events[id]),
		}
		for _, e := range s.events[id] {
			if sum.FirstEventAt.IsZero() || e.CreatedAt.Before(sum.FirstEventAt) {
				sum.FirstEventAt = e.CreatedAt
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out, nil
}

// SaveMatch implements Writer.
func (s *MemoryStore) SaveMatch(_ context.Context, m model.MatchMetadata) error {
	if m.MatchID == "" {
		return fmt.Errorf("%w: match id", model.ErrMissingIdentifier)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.MatchID] = m
	return nil
}

// SavePlayers implements Writer.
func (s *MemoryStore) SavePlayers(_ context.Context, players []model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range players {
		if p.ID == "" {
			return fmt.Errorf("%w: player id", model.ErrMissingIdentifier)
		}
		s.players[p.ID] = p
	}
	return nil
}

// SaveEvents implements Writer. Events are stored as given; validation is
// left to the aggregation.
func (s *MemoryStore) SaveEvents(_ context.Context, events []model.MatchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		if e.ID == "" || e.MatchID == "" {
			return fmt.Errorf("%w: event or match id", model.ErrMissingIdentifier)
		}
		byID := s.events[e.MatchID]
		if byID == nil {
			byID = make(map[string]model.MatchEvent)
			s.events[e.MatchID] = byID
		}
		byID[e.ID] = e
	}
	return nil
}

// SaveHalfStats implements Writer.
func (s *MemoryStore) SaveHalfStats(_ context.Context, rows []model.PlayerHalfStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		list := s.halves[r.MatchID]
		replaced := false
		for i := range list {
			if list[i].PlayerID == r.PlayerID && list[i].Half == r.Half {
				list[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			list = append(list, r)
		}
		s.halves[r.MatchID] = list
	}
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

package repository

import (
	"context"

	lru "github.com/hashicorp/golang-lru"

	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/pkg/metrics"
)

// CachedRosterStore caches rosters and match metadata in front of a Reader.
// Events and half stats always go to the wrapped store.
type CachedRosterStore struct {
	Reader
	size    int
	rosters *lru.Cache
	matches *lru.Cache
}

// NewCachedRosterStore wraps next with LRU caches.
func NewCachedRosterStore(next Reader, opts ...CacheOption) (*CachedRosterStore, error) {
	s := &CachedRosterStore{Reader: next, size: 256}
	for _, opt := range opts {
		opt(s)
	}
	var err error
	if s.rosters, err = lru.New(s.size); err != nil {
		return nil, err
	}
	if s.matches, err = lru.New(s.size); err != nil {
		return nil, err
	}
	return s, nil
}

// FetchPlayerRoster serves a cached copy when present.
func (s *CachedRosterStore) FetchPlayerRoster(ctx context.Context, teamID string) ([]model.Player, error) {
	if v, ok := s.rosters.Get(teamID); ok {
		metrics.RecordRosterCacheLookup(true)
		return append([]model.Player(nil), v.([]model.Player)...), nil
	}
	metrics.RecordRosterCacheLookup(false)
	players, err := s.Reader.FetchPlayerRoster(ctx, teamID)
	if err != nil {
		return nil, err
	}
	s.rosters.Add(teamID, append([]model.Player(nil), players...))
	return players, nil
}

// FetchMatchMetadata serves a cached copy when present. Misses are not cached.
func (s *CachedRosterStore) FetchMatchMetadata(ctx context.Context, matchID string) (model.MatchMetadata, error) {
	if v, ok := s.matches.Get(matchID); ok {
		metrics.RecordRosterCacheLookup(true)
		return v.(model.MatchMetadata), nil
	}
	metrics.RecordRosterCacheLookup(false)
	m, err := s.Reader.FetchMatchMetadata(ctx, matchID)
	if err != nil {
		return model.MatchMetadata{}, err
	}
	s.matches.Add(matchID, m)
	return m, nil
}

// Purge drops every cached entry. Call it after seeding new rosters.
func (s *CachedRosterStore) Purge() {
	s.rosters.Purge()
	s.matches.Purge()
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/pkg/logger"
	"github.com/okian/pitchlens/pkg/metrics"
)

// RetryingStore retries every read of the wrapped Reader with exponential
// backoff. ErrNotFound, ErrInvalidLimit and context errors are permanent.
type RetryingStore struct {
	next        Reader
	maxRetries  uint64
	initial     time.Duration
	maxInterval time.Duration
	log         logger.Logger
}

// NewRetryingStore wraps next.
func NewRetryingStore(next Reader, opts ...RetryOption) *RetryingStore {
	s := &RetryingStore{
		next:        next,
		maxRetries:  3,
		initial:     50 * time.Millisecond,
		maxInterval: 2 * time.Second,
		log:         logger.OrNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("store")
	return s
}

func (s *RetryingStore) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initial
	b.MaxInterval = s.maxInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, s.maxRetries), ctx)
}

func permanent(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func retry[T any](ctx context.Context, s *RetryingStore, op string, fn func() (T, error)) (T, error) {
	attempt := 0
	return backoff.RetryNotifyWithData(func() (T, error) {
		attempt++
		v, err := fn()
		if err != nil && permanent(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, s.policy(ctx), func(err error, wait time.Duration) {
		metrics.RecordStoreRetry(op)
		s.log.Warn(ctx, "retrying store call",
			logger.String("operation", op),
			logger.Int("attempt", attempt),
			logger.Duration("wait", wait),
			logger.Error(err),
		)
	})
}

// FetchEvents implements Reader.
func (s *RetryingStore) FetchEvents(ctx context.Context, matchID string, q model.EventQuery) ([]model.MatchEvent, error) {
	return retry(ctx, s, "fetch_events", func() ([]model.MatchEvent, error) {
		return s.next.FetchEvents(ctx, matchID, q)
	})
}

// FetchMatchMetadata implements Reader.
func (s *RetryingStore) FetchMatchMetadata(ctx context.Context, matchID string) (model.MatchMetadata, error) {
	return retry(ctx, s, "fetch_metadata", func() (model.MatchMetadata, error) {
		return s.next.FetchMatchMetadata(ctx, matchID)
	})
}

// FetchPlayerRoster implements Reader.
func (s *RetryingStore) FetchPlayerRoster(ctx context.Context, teamID string) ([]model.Player, error) {
	return retry(ctx, s, "fetch_roster", func() ([]model.Player, error) {
		return s.next.FetchPlayerRoster(ctx, teamID)
	})
}

// FetchHalfStats implements Reader.
func (s *RetryingStore) FetchHalfStats(ctx context.Context, matchID string) ([]model.PlayerHalfStats, error) {
	return retry(ctx, s, "fetch_half_stats", func() ([]model.PlayerHalfStats, error) {
		return s.next.FetchHalfStats(ctx, matchID)
	})
}

// ListMatches implements Reader.
func (s *RetryingStore) ListMatches(ctx context.Context) ([]MatchSummary, error) {
	return retry(ctx, s, "list_matches", func() ([]MatchSummary, error) {
		return s.next.ListMatches(ctx)
	})
}

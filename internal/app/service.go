// Package service provides the analytics service that implements the
// dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/pitchlens/internal/adapters/repository"
	"github.com/okian/pitchlens/internal/config"
	"github.com/okian/pitchlens/internal/domain/accumulate"
	"github.com/okian/pitchlens/internal/domain/aggregate"
	"github.com/okian/pitchlens/internal/domain/compare"
	"github.com/okian/pitchlens/internal/domain/geometry"
	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/internal/domain/worktime"
	"github.com/okian/pitchlens/pkg/logger"
	"github.com/okian/pitchlens/pkg/metrics"
)

// Service wires the event store, the aggregation engine and the comparer.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	reader   repository.Reader
	cache    *repository.CachedRosterStore
	engine   *aggregate.Engine
	comparer *compare.Comparer

	// Configuration
	cfg       *config.Config
	ownsStore bool

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the configuration. Defaults from config.New are used
// otherwise.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithStore injects an event store. The service does not close an injected
// store; without one it opens SQLite at the configured path.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{cfg: config.New()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the store and builds the read path:
// store -> retries -> roster cache -> engine -> comparer.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	s.logger.Info(ctx, "starting analytics service...")

	if s.store == nil {
		db, err := repository.OpenSQLite(s.cfg.DBPath)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOpenStore, err)
		}
		s.store = db
		s.ownsStore = true
		s.logger.Info(ctx, "using sqlite store", logger.String("path", s.cfg.DBPath))
	}

	retrying := repository.NewRetryingStore(s.store,
		repository.WithMaxRetries(s.cfg.StoreMaxRetries),
		repository.WithInitialInterval(s.cfg.StoreRetryInitial()),
		repository.WithRetryLogger(s.logger),
	)
	cache, err := repository.NewCachedRosterStore(retrying, repository.WithCacheSize(s.cfg.RosterCacheSize))
	if err != nil {
		s.closeOwnedStore()
		return err
	}
	s.cache = cache
	s.reader = cache

	loc, err := s.cfg.Location()
	if err != nil {
		s.closeOwnedStore()
		return err
	}
	s.engine = aggregate.New(s.reader,
		aggregate.WithLogger(s.logger),
		aggregate.WithPageSize(s.cfg.PageSize),
		aggregate.WithMaxConcurrentMatches(s.cfg.MaxConcurrentMatches),
		aggregate.WithPitch(geometry.Pitch{
			ZoneLow: s.cfg.ZoneLow, ZoneHigh: s.cfg.ZoneHigh,
			LaneLow: s.cfg.LaneLow, LaneHigh: s.cfg.LaneHigh,
		}),
		aggregate.WithSetPieceRatios(accumulate.SetPieceRatios{
			Shots: s.cfg.CornerShotRatio, Goals: s.cfg.CornerGoalRatio,
		}),
		aggregate.WithWorkTimeAnalyzer(worktime.New(
			worktime.WithBreakThreshold(s.cfg.BreakThreshold()),
			worktime.WithLocation(loc),
		)),
	)
	s.comparer = compare.NewComparer(s.reader, s.reader, s.engine, s.logger)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "analytics service started",
		logger.Int("pageSize", s.cfg.PageSize),
		logger.Int("maxConcurrentMatches", s.cfg.MaxConcurrentMatches),
		logger.Int64("breakThresholdMs", s.cfg.BreakThresholdMS),
	)
	return nil
}

func (s *Service) closeOwnedStore() {
	if s.ownsStore && s.store != nil {
		_ = s.store.Close()
		s.store = nil
		s.ownsStore = false
	}
}

// Stop releases the store when the service opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping analytics service...")
	if s.cache != nil {
		s.cache.Purge()
	}
	s.closeOwnedStore()
	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Store returns the underlying store, for seeding.
func (s *Service) Store() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// AggregateMatch returns every derived view of one match.
func (s *Service) AggregateMatch(ctx context.Context, matchID string) (aggregate.MatchAnalytics, error) {
	if err := s.ready(); err != nil {
		return aggregate.MatchAnalytics{}, err
	}
	return s.engine.AggregateMatch(ctx, matchID)
}

// AggregatePlayers sums per-player stats across matches.
func (s *Service) AggregatePlayers(ctx context.Context, matchIDs []string) ([]model.PlayerStats, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.engine.AggregatePlayers(ctx, matchIDs)
}

// CompareMatches lines up per-player stats of two matches.
func (s *Service) CompareMatches(ctx context.Context, m1, m2 string) (compare.Result, error) {
	if err := s.ready(); err != nil {
		return compare.Result{}, err
	}
	return s.comparer.CompareMatches(ctx, m1, m2)
}

// WorkTime reports active and break time. With no ids every stored match is
// reported.
func (s *Service) WorkTime(ctx context.Context, matchIDs []string) (aggregate.WorkTimeReport, error) {
	if err := s.ready(); err != nil {
		return aggregate.WorkTimeReport{}, err
	}
	if len(matchIDs) == 0 {
		list, err := s.ListMatches(ctx)
		if err != nil {
			return aggregate.WorkTimeReport{}, err
		}
		for _, m := range list {
			matchIDs = append(matchIDs, m.MatchID)
		}
	}
	return s.engine.WorkTime(ctx, matchIDs)
}

// ListMatches lists stored matches.
func (s *Service) ListMatches(ctx context.Context) ([]repository.MatchSummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	list, err := s.reader.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list matches: %w", aggregate.ErrFetchFailed, err)
	}
	return list, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	started, startedAt := s.started, s.startedAt
	s.mu.RUnlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	goroutines := runtime.NumGoroutine()
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(goroutines)

	stats := map[string]any{
		"started":              started,
		"pageSize":             s.cfg.PageSize,
		"breakThresholdMs":     s.cfg.BreakThresholdMS,
		"maxConcurrentMatches": s.cfg.MaxConcurrentMatches,
		"goroutines":           goroutines,
		"memoryBytes":          m.Alloc,
	}
	if started {
		stats["uptimeSeconds"] = int64(time.Since(startedAt).Seconds())
		if list, err := s.ListMatches(context.Background()); err == nil {
			stats["matches"] = len(list)
		}
	}
	return stats
}

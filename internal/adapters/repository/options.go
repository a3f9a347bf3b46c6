package repository

import (
	"time"

	"github.com/okian/pitchlens/pkg/logger"
)

// RetryOption applies a configuration option to the RetryingStore.
type RetryOption func(*RetryingStore)

// WithMaxRetries sets how many times a failed read is retried.
func WithMaxRetries(n int) RetryOption {
	return func(s *RetryingStore) {
		if n >= 0 {
			s.maxRetries = uint64(n)
		}
	}
}

// WithInitialInterval sets the first backoff interval.
func WithInitialInterval(d time.Duration) RetryOption {
	return func(s *RetryingStore) {
		if d > 0 {
			s.initial = d
		}
	}
}

// WithMaxInterval caps a single backoff interval.
func WithMaxInterval(d time.Duration) RetryOption {
	return func(s *RetryingStore) {
		if d > 0 {
			s.maxInterval = d
		}
	}
}

// WithRetryLogger sets the logger used to report retries.
func WithRetryLogger(l logger.Logger) RetryOption {
	return func(s *RetryingStore) {
		if l != nil {
			s.log = l
		}
	}
}

// CacheOption applies a configuration option to the CachedRosterStore.
type CacheOption func(*CachedRosterStore)

// WithCacheSize sets the number of rosters and metadata entries kept.
func WithCacheSize(n int) CacheOption {
	return func(s *CachedRosterStore) {
		if n > 0 {
			s.size = n
		}
	}
}

package aggregate

import (
	"github.com/okian/pitchlens/internal/domain/accumulate"
	"github.com/okian/pitchlens/internal/domain/geometry"
	"github.com/okian/pitchlens/internal/domain/worktime"
	"github.com/okian/pitchlens/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithPageSize sets the number of events requested per page.
func WithPageSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pageSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithPitch sets the zone and lane thresholds.
func WithPitch(p geometry.Pitch) Option {
	return func(e *Engine) {
		e.pitch = p
	}
}

// WithSetPieceRatios sets the heuristic set-piece ratios.
func WithSetPieceRatios(r accumulate.SetPieceRatios) Option {
	return func(e *Engine) {
		e.ratios = r
	}
}

// WithMaxConcurrentMatches bounds parallel per-match aggregations.
func WithMaxConcurrentMatches(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxConcurrent = n
		}
	}
}

// WithWorkTimeAnalyzer sets the analyzer used by WorkTime.
func WithWorkTimeAnalyzer(a *worktime.Analyzer) Option {
	return func(e *Engine) {
		if a != nil {
			e.worktime = a
		}
	}
}

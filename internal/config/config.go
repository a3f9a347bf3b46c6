// Package config defines service configuration and its loading hooks.
//
// Every threshold the engine uses (page size, break threshold, zone and lane
// cutoffs, set-piece ratios) lives here so deployments can tune them without
// touching the analytics code.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DBPath points at the SQLite event store.
	DBPath string `koanf:"db_path"`

	// PageSize is the event store page size used by the orchestrator.
	PageSize int `koanf:"page_size"`

	// BreakThresholdMS is the gap above which time counts as a break.
	BreakThresholdMS int64 `koanf:"break_threshold_ms"`

	// Timezone names the location used to bucket work time by calendar day.
	Timezone string `koanf:"timezone"`

	// Zone cutoffs along the attacking axis.
	ZoneLow  float64 `koanf:"zone_low"`
	ZoneHigh float64 `koanf:"zone_high"`

	// Lane cutoffs across the pitch width.
	LaneLow  float64 `koanf:"lane_low"`
	LaneHigh float64 `koanf:"lane_high"`

	// Set-piece funnel ratios applied to corners taken.
	CornerShotRatio float64 `koanf:"corner_shot_ratio"`
	CornerGoalRatio float64 `koanf:"corner_goal_ratio"`

	// MaxConcurrentMatches bounds parallel per-match aggregations.
	MaxConcurrentMatches int `koanf:"max_concurrent_matches"`

	// StoreMaxRetries and StoreRetryInitialMS configure event store retries.
	StoreMaxRetries     int `koanf:"store_max_retries"`
	StoreRetryInitialMS int `koanf:"store_retry_initial_ms"`

	// RosterCacheSize bounds the roster/metadata LRU.
	RosterCacheSize int `koanf:"roster_cache_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		DBPath:               "pitchlens.db",
		PageSize:             1000,
		BreakThresholdMS:     3_600_000,
		Timezone:             "UTC",
		ZoneLow:              33.33,
		ZoneHigh:             66.66,
		LaneLow:              33.3,
		LaneHigh:             66.6,
		CornerShotRatio:      0.3,
		CornerGoalRatio:      0.1,
		MaxConcurrentMatches: 4,
		StoreMaxRetries:      3,
		StoreRetryInitialMS:  50,
		RosterCacheSize:      256,
	}
}

// BreakThreshold returns the break threshold as a duration.
func (c *Config) BreakThreshold() time.Duration {
	return time.Duration(c.BreakThresholdMS) * time.Millisecond
}

// StoreRetryInitial returns the first retry interval.
func (c *Config) StoreRetryInitial() time.Duration {
	return time.Duration(c.StoreRetryInitialMS) * time.Millisecond
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// Validate checks the invariants the engine relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PageSize <= 0:
		return fmt.Errorf("%w: page_size must be positive", ErrInvalidConfig)
	case c.BreakThresholdMS <= 0:
		return fmt.Errorf("%w: break_threshold_ms must be positive", ErrInvalidConfig)
	case !(0 < c.ZoneLow && c.ZoneLow < c.ZoneHigh && c.ZoneHigh < 100):
		return fmt.Errorf("%w: zone cutoffs must satisfy 0 < zone_low < zone_high < 100", ErrInvalidConfig)
	case !(0 < c.LaneLow && c.LaneLow < c.LaneHigh && c.LaneHigh < 100):
		return fmt.Errorf("%w: lane cutoffs must satisfy 0 < lane_low < lane_high < 100", ErrInvalidConfig)
	case c.CornerShotRatio < 0 || c.CornerGoalRatio < 0:
		return fmt.Errorf("%w: set-piece ratios must not be negative", ErrInvalidConfig)
	case c.StoreMaxRetries < 0:
		return fmt.Errorf("%w: store_max_retries must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

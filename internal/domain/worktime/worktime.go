// Package worktime splits event ingestion timelines into active and break time.
package worktime

import (
	"sort"
	"time"
)

// DefaultBreakThreshold is the gap above which time counts as a break.
const DefaultBreakThreshold = time.Hour

// Stats is the active/break split of one timeline.
type Stats struct {
	ActiveMs   int64 `json:"activeMs"`
	BreakMs    int64 `json:"breakMs"`
	BreakCount int   `json:"breakCount"`
}

// DayStats sums Stats over every match whose first event fell on Day.
type DayStats struct {
	Day        string `json:"day"` // YYYY-MM-DD in the analyzer location
	ActiveMs   int64  `json:"activeMs"`
	BreakMs    int64  `json:"breakMs"`
	BreakCount int    `json:"breakCount"`
	EventCount int    `json:"eventCount"`
	Matches    int    `json:"matches"`
}

// Timeline is the ingestion timestamps of one match, in milliseconds.
type Timeline struct {
	MatchID    string
	Timestamps []int64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithBreakThreshold sets the break threshold. Non-positive values are ignored.
func WithBreakThreshold(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.threshold = d.Milliseconds()
		}
	}
}

// WithLocation sets the location used to pick a timeline's calendar day.
func WithLocation(loc *time.Location) Option {
	return func(a *Analyzer) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// Analyzer is stateless between calls.
type Analyzer struct {
	threshold int64
	loc       *time.Location
}

// New returns an Analyzer with a one hour threshold in UTC.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{threshold: DefaultBreakThreshold.Milliseconds(), loc: time.UTC}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Threshold returns the break threshold in milliseconds.
func (a *Analyzer) Threshold() int64 { return a.threshold }

// Segment walks consecutive timestamps. A gap strictly greater than the
// threshold is a break, anything else is active time.
func (a *Analyzer) Segment(ts []int64) Stats {
	var s Stats
	if len(ts) < 2 {
		return s
	}
	sorted := sortedCopy(ts)
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i] - sorted[i-1]
		if gap > a.threshold {
			s.BreakMs += gap
			s.BreakCount++
			continue
		}
		s.ActiveMs += gap
	}
	return s
}

// ByDay segments each timeline and sums the results per calendar day of the
// timeline's first timestamp. Empty timelines are skipped. Days are returned
// in ascending order.
func (a *Analyzer) ByDay(timelines []Timeline) []DayStats {
	days := make(map[string]*DayStats)
	for _, tl := range timelines {
		if len(tl.Timestamps) == 0 {
			continue
		}
		sorted := sortedCopy(tl.Timestamps)
		key := time.UnixMilli(sorted[0]).In(a.loc).Format(time.DateOnly)

		d, ok := days[key]
		if !ok {
			d = &DayStats{Day: key}
			days[key] = d
		}
		s := a.Segment(sorted)
		d.ActiveMs += s.ActiveMs
		d.BreakMs += s.BreakMs
		d.BreakCount += s.BreakCount
		d.EventCount += len(sorted)
		d.Matches++
	}

	out := make([]DayStats, 0, len(days))
	for _, d := range days {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

func sortedCopy(ts []int64) []int64 {
	out := make([]int64, len(ts))
	copy(out, ts)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

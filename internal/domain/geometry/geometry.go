// Package geometry converts normalized pitch coordinates into zones, lanes and
// pass directions, and holds the possession-loss rule sets.
package geometry

import (
	"math"
	"sort"

	"github.com/okian/pitchlens/internal/domain/model"
)

// Default thresholds. Zone and lane cutoffs differ in their decimals and are
// kept apart on purpose: each call site classifies exactly as recorded.
const (
	DefaultZoneLow  = 33.33
	DefaultZoneHigh = 66.66
	DefaultLaneLow  = 33.3
	DefaultLaneHigh = 66.6
)

// Pitch carries the classification thresholds.
type Pitch struct {
	ZoneLow  float64
	ZoneHigh float64
	LaneLow  float64
	LaneHigh float64
}

// DefaultPitch returns the standard thresholds.
func DefaultPitch() Pitch {
	return Pitch{
		ZoneLow:  DefaultZoneLow,
		ZoneHigh: DefaultZoneHigh,
		LaneLow:  DefaultLaneLow,
		LaneHigh: DefaultLaneHigh,
	}
}

// Zone classifies x into a pitch third. Lower bounds are inclusive.
func (p Pitch) Zone(x float64) model.Zone {
	switch {
	case x < p.ZoneLow:
		return model.ZoneDefensive
	case x < p.ZoneHigh:
		return model.ZoneMiddle
	}
	return model.ZoneFinal
}

// Lane classifies y into a corridor. Both cutoffs belong to the center lane.
func (p Pitch) Lane(y float64) model.Lane {
	switch {
	case y < p.LaneLow:
		return model.LaneLeft
	case y > p.LaneHigh:
		return model.LaneRight
	}
	return model.LaneCenter
}

// ClassifyZone classifies x with the default thresholds.
func ClassifyZone(x float64) model.Zone { return DefaultPitch().Zone(x) }

// ClassifyLane classifies y with the default thresholds.
func ClassifyLane(y float64) model.Lane { return DefaultPitch().Lane(y) }

// ClassifyPassDirection compares the end x with the origin x. A missing end
// point or an unchanged x is lateral.
func ClassifyPassDirection(x float64, endX *float64) model.Direction {
	switch {
	case endX == nil || *endX == x:
		return model.DirectionLateral
	case *endX > x:
		return model.DirectionForward
	}
	return model.DirectionBackward
}

// IsPossessionLoss is the explicit loss-type rule: a failed pass-family event
// or dribble, or an event whose type is itself a loss.
func IsPossessionLoss(e *model.MatchEvent) bool {
	switch e.Type {
	case model.EventOffside, model.EventBadTouch, model.EventDispossession, model.EventTurnover:
		return true
	case model.EventDribble:
		return !e.Successful
	}
	return e.Type.IsPassFamily() && !e.Successful
}

// IsFailedDistribution is the incomplete-pass rule of the match summary: any
// unsuccessful pass-family event (crosses included) or throw-in.
func IsFailedDistribution(e *model.MatchEvent) bool {
	if e.Successful {
		return false
	}
	return e.Type.IsPassFamily() || e.Type == model.EventThrowIn
}

// SharePercents returns each count's share of the total as whole percents
// summing to exactly 100. Remainders are distributed largest first, ties to
// the lower index. All shares are 0 when the total is 0.
func SharePercents(counts ...int) []float64 {
	out := make([]float64, len(counts))
	total := 0
	for _, c := range counts {
		total += c
	}
	if total <= 0 {
		return out
	}

	type rem struct {
		idx  int
		frac float64
	}
	rems := make([]rem, len(counts))
	assigned := 0
	for i, c := range counts {
		exact := float64(c) * 100 / float64(total)
		floor := math.Floor(exact)
		out[i] = floor
		assigned += int(floor)
		rems[i] = rem{idx: i, frac: exact - floor}
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; i < 100-assigned && i < len(rems); i++ {
		out[rems[i].idx]++
	}
	return out
}

// Package xg scores shots with a fixed closed-form expected-goals heuristic.
package xg

import (
	"math"

	"github.com/okian/pitchlens/internal/domain/model"
)

// ShotZone is the scoring area a shot was taken from.
type ShotZone string

// Shot zones, checked in this priority order.
const (
	ZoneSixYardBox ShotZone = "six_yard_box"
	ZonePenaltyBox ShotZone = "penalty_box"
	ZoneOutsideBox ShotZone = "outside_box"
)

// Pitch and goal dimensions in meters.
const (
	PitchLength = 105.0
	PitchWidth  = 68.0
	GoalWidth   = 7.32
)

// Penalty constants.
const (
	PenaltyXG       = 0.76
	PenaltyDistance = 11.0
	PenaltyAngle    = 45.0
)

// Bounds of the result.
const (
	MinXG = 0.01
	MaxXG = 0.95
)

const (
	sixYardMinX    = 94.8
	sixYardMinY    = 43.3
	sixYardMaxY    = 56.7
	penaltyBoxMinX = 84.3
	penaltyBoxMinY = 35.2
	penaltyBoxMaxY = 64.8

	decay         = 0.1
	fullAngle     = 45.0
	headerFactor  = 0.7
	sixYardFactor = 1.8
	penaltyFactor = 1.3
	outsideFactor = 0.7
)

// Shot is the input of the model: a normalized position and two flags.
type Shot struct {
	X, Y      float64
	IsHeader  bool
	IsPenalty bool
}

// Result is the scored shot. Distance is in meters, Angle in degrees.
type Result struct {
	XG       float64  `json:"xg"`
	Distance float64  `json:"distance"`
	Angle    float64  `json:"angle"`
	Zone     ShotZone `json:"zone"`
}

// FromEvent builds a Shot from a shot-family event.
func FromEvent(e *model.MatchEvent) Shot {
	return Shot{X: e.X, Y: e.Y, IsHeader: e.IsHeader, IsPenalty: e.Type == model.EventPenalty}
}

// Compute scores a single shot.
func Compute(s Shot) Result {
	if s.IsPenalty {
		return Result{XG: PenaltyXG, Distance: PenaltyDistance, Angle: PenaltyAngle, Zone: ZonePenaltyBox}
	}

	sx := s.X / 100 * PitchLength
	sy := s.Y / 100 * PitchWidth
	gx, gy := PitchLength, PitchWidth/2

	distance := math.Hypot(gx-sx, gy-sy)

	left := math.Atan2(gy-GoalWidth/2-sy, gx-sx)
	right := math.Atan2(gy+GoalWidth/2-sy, gx-sx)
	angle := math.Abs(right-left) * 180 / math.Pi
	if angle > 180 {
		angle = 360 - angle
	}

	zone := classify(s.X, s.Y)

	v := math.Exp(-decay*distance) * math.Min(1, angle/fullAngle) * zoneFactor(zone)
	if s.IsHeader {
		v *= headerFactor
	}
	v = math.Max(MinXG, math.Min(MaxXG, v))

	return Result{
		XG:       model.Round(v, 2),
		Distance: model.Round(distance, 2),
		Angle:    model.Round(angle, 2),
		Zone:     zone,
	}
}

func classify(x, y float64) ShotZone {
	switch {
	case x >= sixYardMinX && y >= sixYardMinY && y <= sixYardMaxY:
		return ZoneSixYardBox
	case x >= penaltyBoxMinX && y >= penaltyBoxMinY && y <= penaltyBoxMaxY:
		return ZonePenaltyBox
	}
	return ZoneOutsideBox
}

func zoneFactor(z ShotZone) float64 {
	switch z {
	case ZoneSixYardBox:
		return sixYardFactor
	case ZonePenaltyBox:
		return penaltyFactor
	}
	return outsideFactor
}

// TotalXG sums the xG of results.
func TotalXG(results []Result) float64 {
	var sum float64
	for _, r := range results {
		sum += r.XG
	}
	return sum
}

// Overperformance is goals minus total xG, rounded to two decimals.
func Overperformance(results []Result, goals int) float64 {
	return model.Round(float64(goals)-TotalXG(results), 2)
}

// Quality is the mean xG per shot, 0 for no shots.
func Quality(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	return TotalXG(results) / float64(len(results))
}

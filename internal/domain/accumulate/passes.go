package accumulate

import (
	"github.com/okian/pitchlens/internal/domain/geometry"
	"github.com/okian/pitchlens/internal/domain/model"
)

// ThreatPerPass is credited to a lane for every qualifying pass started
// beyond ThreatMinX.
const (
	ThreatPerPass = 0.02
	ThreatMinX    = 70.0
)

// ZoneStats counts successful passes by origin third.
type ZoneStats struct {
	Defensive int `json:"defensive"`
	Middle    int `json:"middle"`
	Final     int `json:"final"`
	Total     int `json:"total"`

	DefensivePercent float64 `json:"defensivePercent"`
	MiddlePercent    float64 `json:"middlePercent"`
	FinalPercent     float64 `json:"finalPercent"`
}

func (z *ZoneStats) add(zone model.Zone) {
	switch zone {
	case model.ZoneDefensive:
		z.Defensive++
	case model.ZoneMiddle:
		z.Middle++
	default:
		z.Final++
	}
}

func (z ZoneStats) finalize() ZoneStats {
	z.Total = z.Defensive + z.Middle + z.Final
	shares := geometry.SharePercents(z.Defensive, z.Middle, z.Final)
	z.DefensivePercent, z.MiddlePercent, z.FinalPercent = shares[0], shares[1], shares[2]
	return z
}

// PassByThird folds successful pass-family events into the origin third.
type PassByThird struct {
	counts model.TeamPair[model.Scoped[ZoneStats]]
}

// NewPassByThird returns an empty reducer.
func NewPassByThird() *PassByThird { return &PassByThird{} }

func (*PassByThird) Name() string { return "pass_by_third" }

func (*PassByThird) Accepts(t model.EventType) bool { return t.IsPassFamily() }

func (a *PassByThird) Fold(fc *FoldContext, e *model.MatchEvent) {
	if !fc.Attributed || !e.Successful {
		return
	}
	zone := fc.Pitch.Zone(e.X)
	bump(&a.counts, fc, func(z *ZoneStats) { z.add(zone) })
}

// Finalize returns totals and shares per team and scope.
func (a *PassByThird) Finalize() model.TeamPair[model.Scoped[ZoneStats]] {
	return mapScoped(a.counts, ZoneStats.finalize)
}

// LaneBucket is one lane's pass count and threat.
type LaneBucket struct {
	Passes        int     `json:"passes"`
	Threat        float64 `json:"threat"`
	ThreatPercent float64 `json:"threatPercent"`

	threatPasses int
}

// LaneStats is the lane split of successful passes.
type LaneStats struct {
	Left   LaneBucket `json:"left"`
	Center LaneBucket `json:"center"`
	Right  LaneBucket `json:"right"`
	Total  int        `json:"total"`
}

func (l *LaneStats) bucket(lane model.Lane) *LaneBucket {
	switch lane {
	case model.LaneLeft:
		return &l.Left
	case model.LaneRight:
		return &l.Right
	}
	return &l.Center
}

func (l LaneStats) finalize() LaneStats {
	l.Total = l.Left.Passes + l.Center.Passes + l.Right.Passes
	shares := geometry.SharePercents(l.Left.Passes, l.Center.Passes, l.Right.Passes)
	for i, b := range []*LaneBucket{&l.Left, &l.Center, &l.Right} {
		b.ThreatPercent = shares[i]
		b.Threat = model.Round(float64(b.threatPasses)*ThreatPerPass, 2)
	}
	return l
}

// LaneThreat folds successful pass-family events into the origin lane.
type LaneThreat struct {
	lanes model.TeamPair[model.Scoped[LaneStats]]
}

// NewLaneThreat returns an empty reducer.
func NewLaneThreat() *LaneThreat { return &LaneThreat{} }

func (*LaneThreat) Name() string { return "lane_threat" }

func (*LaneThreat) Accepts(t model.EventType) bool { return t.IsPassFamily() }

func (a *LaneThreat) Fold(fc *FoldContext, e *model.MatchEvent) {
	if !fc.Attributed || !e.Successful {
		return
	}
	lane := fc.Pitch.Lane(e.Y)
	threat := e.X > ThreatMinX
	bump(&a.lanes, fc, func(l *LaneStats) {
		b := l.bucket(lane)
		b.Passes++
		if threat {
			b.threatPasses++
		}
	})
}

// Finalize returns lane counts, threat and pass shares per team and scope.
func (a *LaneThreat) Finalize() model.TeamPair[model.Scoped[LaneStats]] {
	return mapScoped(a.lanes, LaneStats.finalize)
}

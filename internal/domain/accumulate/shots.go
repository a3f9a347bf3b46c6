package accumulate

import (
	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/internal/domain/xg"
)

// ShotRecord is a scored shot.
type ShotRecord struct {
	EventID  string            `json:"eventId"`
	PlayerID string            `json:"playerId,omitempty"`
	TeamID   string            `json:"teamId"`
	Side     string            `json:"side"`
	Half     int               `json:"half"`
	Minute   int               `json:"minute"`
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	Outcome  model.ShotOutcome `json:"outcome,omitempty"`
	Header   bool              `json:"header"`
	Penalty  bool              `json:"penalty"`
	PhaseID  string            `json:"phaseId,omitempty"`
	xg.Result
}

// ShotSummary totals a team's shots in one scope.
type ShotSummary struct {
	Shots           int     `json:"shots"`
	OnTarget        int     `json:"onTarget"`
	Goals           int     `json:"goals"`
	XG              float64 `json:"xg"`
	Overperformance float64 `json:"overperformance"`
	Quality         float64 `json:"quality"`

	results []xg.Result
}

// ShotMap is the finalized shot view.
type ShotMap struct {
	Shots   []ShotRecord                              `json:"shots"`
	Summary model.TeamPair[model.Scoped[ShotSummary]] `json:"summary"`
}

// Shots scores every attributed shot with the xG model.
type Shots struct {
	records []ShotRecord
	summary model.TeamPair[model.Scoped[ShotSummary]]
}

// NewShots returns an empty reducer.
func NewShots() *Shots { return &Shots{} }

func (*Shots) Name() string { return "shots" }

func (*Shots) Accepts(t model.EventType) bool { return t.IsShot() }

func (a *Shots) Fold(fc *FoldContext, e *model.MatchEvent) {
	if !fc.Attributed {
		return
	}
	r := xg.Compute(xg.FromEvent(e))
	a.records = append(a.records, ShotRecord{
		EventID:  e.ID,
		PlayerID: e.PlayerID,
		TeamID:   fc.TeamID,
		Side:     fc.Side.String(),
		Half:     e.Half,
		Minute:   e.Minute,
		X:        e.X,
		Y:        e.Y,
		Outcome:  e.ShotOutcome,
		Header:   e.IsHeader,
		Penalty:  e.Type == model.EventPenalty,
		PhaseID:  e.PhaseID,
		Result:   r,
	})
	bump(&a.summary, fc, func(s *ShotSummary) {
		s.Shots++
		if e.ShotOutcome.OnTarget() {
			s.OnTarget++
		}
		if e.IsGoal() {
			s.Goals++
		}
		s.results = append(s.results, r)
	})
}

// Count returns the number of shots scored so far.
func (a *Shots) Count() int { return len(a.records) }

// Finalize returns every shot in fold order and per-team totals.
func (a *Shots) Finalize() ShotMap {
	records := append([]ShotRecord{}, a.records...)
	summary := mapScoped(a.summary, func(s ShotSummary) ShotSummary {
		return ShotSummary{
			Shots:           s.Shots,
			OnTarget:        s.OnTarget,
			Goals:           s.Goals,
			XG:              model.Round(xg.TotalXG(s.results), 2),
			Overperformance: xg.Overperformance(s.results, s.Goals),
			Quality:         model.Round(xg.Quality(s.results), 2),
		}
	})
	return ShotMap{Shots: records, Summary: summary}
}

// DefensivePoint is one defensive action on the pitch.
type DefensivePoint struct {
	EventID    string          `json:"eventId"`
	PlayerID   string          `json:"playerId,omitempty"`
	TeamID     string          `json:"teamId"`
	Side       string          `json:"side"`
	Type       model.EventType `json:"type"`
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	Half       int             `json:"half"`
	Minute     int             `json:"minute"`
	Successful bool            `json:"successful"`
}

// DefensiveCounts totals a team's defensive actions in one scope.
type DefensiveCounts struct {
	Tackles       int `json:"tackles"`
	TacklesWon    int `json:"tacklesWon"`
	Interceptions int `json:"interceptions"`
	Clearances    int `json:"clearances"`
	Blocks        int `json:"blocks"`
	Recoveries    int `json:"recoveries"`
}

// DefensiveMap is the finalized defensive view.
type DefensiveMap struct {
	Actions []DefensivePoint                              `json:"actions"`
	Counts  model.TeamPair[model.Scoped[DefensiveCounts]] `json:"counts"`
}

// Defensive collects tackles, interceptions, clearances, blocks and recoveries.
type Defensive struct {
	out DefensiveMap
}

// NewDefensive returns an empty reducer.
func NewDefensive() *Defensive { return &Defensive{} }

func (*Defensive) Name() string { return "defensive" }

func (*Defensive) Accepts(t model.EventType) bool { return t.IsDefensive() }

func (a *Defensive) Fold(fc *FoldContext, e *model.MatchEvent) {
	if !fc.Attributed {
		return
	}
	a.out.Actions = append(a.out.Actions, DefensivePoint{
		EventID:    e.ID,
		PlayerID:   e.PlayerID,
		TeamID:     fc.TeamID,
		Side:       fc.Side.String(),
		Type:       e.Type,
		X:          e.X,
		Y:          e.Y,
		Half:       e.Half,
		Minute:     e.Minute,
		Successful: e.Successful,
	})
	bump(&a.out.Counts, fc, func(c *DefensiveCounts) {
		switch e.Type {
		case model.EventTackle:
			c.Tackles++
			if e.Successful {
				c.TacklesWon++
			}
		case model.EventInterception:
			c.Interceptions++
		case model.EventClearance:
			c.Clearances++
		case model.EventBlock:
			c.Blocks++
		case model.EventRecovery:
			c.Recoveries++
		}
	})
}

// Finalize returns the actions in fold order and their counts.
func (a *Defensive) Finalize() DefensiveMap {
	return DefensiveMap{
		Actions: append([]DefensivePoint{}, a.out.Actions...),
		Counts:  a.out.Counts,
	}
}

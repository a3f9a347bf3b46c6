package accumulate

import (
	"github.com/okian/pitchlens/internal/domain/geometry"
	"github.com/okian/pitchlens/internal/domain/model"
)

// LossPoint is where and by whom possession was lost.
type LossPoint struct {
	EventID  string          `json:"eventId"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	PlayerID string          `json:"playerId,omitempty"`
	TeamID   string          `json:"teamId"`
	Side     string          `json:"side"`
	Half     int             `json:"half"`
	Minute   int             `json:"minute"`
	Type     model.EventType `json:"type"`
}

// PossessionLosses is the finalized loss map.
type PossessionLosses struct {
	Points []LossPoint                       `json:"points"`
	Counts model.TeamPair[model.Scoped[int]] `json:"counts"`
}

// PossessionLoss collects events matching the explicit loss-type rule.
type PossessionLoss struct {
	out PossessionLosses
}

// NewPossessionLoss returns an empty reducer.
func NewPossessionLoss() *PossessionLoss {
	return &PossessionLoss{out: PossessionLosses{Points: []LossPoint{}}}
}

func (*PossessionLoss) Name() string { return "possession_loss" }

func (*PossessionLoss) Accepts(t model.EventType) bool {
	switch t {
	case model.EventOffside, model.EventBadTouch, model.EventDispossession, model.EventTurnover, model.EventDribble:
		return true
	}
	return t.IsPassFamily()
}

func (a *PossessionLoss) Fold(fc *FoldContext, e *model.MatchEvent) {
	if !fc.Attributed || !geometry.IsPossessionLoss(e) {
		return
	}
	a.out.Points = append(a.out.Points, LossPoint{
		EventID:  e.ID,
		X:        e.X,
		Y:        e.Y,
		PlayerID: e.PlayerID,
		TeamID:   fc.TeamID,
		Side:     fc.Side.String(),
		Half:     e.Half,
		Minute:   e.Minute,
		Type:     e.Type,
	})
	bump(&a.out.Counts, fc, func(n *int) { *n++ })
}

// Finalize returns the collected points in fold order and their counts.
func (a *PossessionLoss) Finalize() PossessionLosses {
	out := a.out
	out.Points = append([]LossPoint(nil), a.out.Points...)
	if out.Points == nil {
		out.Points = []LossPoint{}
	}
	return out
}

// TypeTally backs the match summary stat panels.
type TypeTally struct {
	CornersSuccessful  int `json:"cornersSuccessful"`
	CornersFailed      int `json:"cornersFailed"`
	ThrowInsSuccessful int `json:"throwInsSuccessful"`
	ThrowInsFailed     int `json:"throwInsFailed"`
	AerialWon          int `json:"aerialWon"`
	AerialLost         int `json:"aerialLost"`
	BackwardPasses     int `json:"backwardPasses"`
	IncompletePasses   int `json:"incompletePasses"`
}

// EventTypeTally counts outcome splits per team.
type EventTypeTally struct {
	tally model.TeamPair[model.Scoped[TypeTally]]
}

// NewEventTypeTally returns an empty reducer.
func NewEventTypeTally() *EventTypeTally { return &EventTypeTally{} }

func (*EventTypeTally) Name() string { return "event_type_tally" }

func (*EventTypeTally) Accepts(t model.EventType) bool {
	switch t {
	case model.EventCorner, model.EventThrowIn, model.EventAerialDuel:
		return true
	}
	return t.IsPassFamily()
}

func (a *EventTypeTally) Fold(fc *FoldContext, e *model.MatchEvent) {
	if !fc.Attributed {
		return
	}
	backward := e.Type.IsPassFamily() && geometry.ClassifyPassDirection(e.X, e.EndX) == model.DirectionBackward
	incomplete := geometry.IsFailedDistribution(e)

	bump(&a.tally, fc, func(t *TypeTally) {
		switch e.Type {
		case model.EventCorner:
			if e.Successful {
				t.CornersSuccessful++
			} else {
				t.CornersFailed++
			}
		case model.EventThrowIn:
			if e.Successful {
				t.ThrowInsSuccessful++
			} else {
				t.ThrowInsFailed++
			}
		case model.EventAerialDuel:
			if aerialWon(e) {
				t.AerialWon++
			} else {
				t.AerialLost++
			}
		}
		if backward {
			t.BackwardPasses++
		}
		if incomplete {
			t.IncompletePasses++
		}
	})
}

// Finalize returns the tallies per team and scope.
func (a *EventTypeTally) Finalize() model.TeamPair[model.Scoped[TypeTally]] {
	return a.tally
}

// aerialWon prefers the explicit duel outcome over the generic success flag.
func aerialWon(e *model.MatchEvent) bool {
	if e.DuelOutcome != "" {
		return e.DuelOutcome == model.DuelWon
	}
	return e.Successful
}

package accumulate

import (
	"fmt"
	"sort"

	"github.com/okian/pitchlens/internal/domain/model"
)

// Default heuristic ratios applied to corners taken.
const (
	DefaultCornerShotRatio = 0.3
	DefaultCornerGoalRatio = 0.1
)

// SetPieceRatios are the fixed ratios used for the heuristic funnel.
type SetPieceRatios struct {
	Shots float64
	Goals float64
}

// DefaultSetPieceRatios returns the standard heuristic ratios.
func DefaultSetPieceRatios() SetPieceRatios {
	return SetPieceRatios{Shots: DefaultCornerShotRatio, Goals: DefaultCornerGoalRatio}
}

// SetPieceTaker is one player's set-piece record in one scope.
//
// ShotsCreated and GoalsCreated are estimated from corners with fixed ratios.
// LinkedShots and LinkedGoals count the taker's own team's shots that come
// later in the same phase as one of the player's set pieces.
type SetPieceTaker struct {
	Key          string `json:"key"`
	PlayerID     string `json:"playerId"`
	Name         string `json:"name"`
	JerseyNumber int    `json:"jerseyNumber"`

	Corners   int `json:"corners"`
	FreeKicks int `json:"freeKicks"`

	ShotsCreated float64 `json:"shotsCreated"`
	GoalsCreated float64 `json:"goalsCreated"`

	LinkedShots int `json:"linkedShots"`
	LinkedGoals int `json:"linkedGoals"`
}

type takerState struct {
	taker  SetPieceTaker
	phases map[string]struct{}
}

// phaseKey is a phase as seen by one side.
type phaseKey struct {
	phase string
	side  model.Side
}

// link ties a taker in one scope to an open phase.
type link struct {
	st    *takerState
	scope model.Scope
}

// SetPieces attributes corners and free kicks to rostered takers. Events must
// be folded in match order for the phase linkage to hold.
type SetPieces struct {
	ratios SetPieceRatios
	takers model.TeamPair[model.Scoped[map[string]*takerState]]
	open   map[phaseKey][]link
}

// NewSetPieces returns an empty reducer.
func NewSetPieces(ratios SetPieceRatios) *SetPieces {
	return &SetPieces{ratios: ratios, open: make(map[phaseKey][]link)}
}

func (*SetPieces) Name() string { return "set_pieces" }

// Accepts set pieces and shots. Shots are only used for phase linkage.
func (*SetPieces) Accepts(t model.EventType) bool { return t.IsSetPiece() || t.IsShot() }

func (a *SetPieces) Fold(fc *FoldContext, e *model.MatchEvent) {
	if !fc.Attributed {
		return
	}
	if e.Type.IsShot() {
		a.credit(fc, e)
		return
	}
	if fc.Player == nil {
		return
	}

	p := fc.Player
	key := fmt.Sprintf("%s#%d", p.Name, p.JerseyNumber)
	side := a.takers.At(fc.Side)
	for _, scope := range fc.Scopes() {
		m := side.At(scope)
		if *m == nil {
			*m = make(map[string]*takerState)
		}
		st := (*m)[key]
		if st == nil {
			st = &takerState{
				taker:  SetPieceTaker{Key: key, PlayerID: p.ID, Name: p.Name, JerseyNumber: p.JerseyNumber},
				phases: make(map[string]struct{}),
			}
			(*m)[key] = st
		}
		if e.Type == model.EventCorner {
			st.taker.Corners++
		} else {
			st.taker.FreeKicks++
		}
		if e.PhaseID == "" {
			continue
		}
		if _, seen := st.phases[e.PhaseID]; !seen {
			st.phases[e.PhaseID] = struct{}{}
			k := phaseKey{phase: e.PhaseID, side: fc.Side}
			a.open[k] = append(a.open[k], link{st: st, scope: scope})
		}
	}
}

// credit credits a shot to the takers whose set piece opened its phase earlier
// for the same side.
func (a *SetPieces) credit(fc *FoldContext, e *model.MatchEvent) {
	if e.PhaseID == "" {
		return
	}
	for _, l := range a.open[phaseKey{phase: e.PhaseID, side: fc.Side}] {
		if l.scope != model.ScopeAll && l.scope != fc.Scope {
			continue
		}
		l.st.taker.LinkedShots++
		if e.IsGoal() {
			l.st.taker.LinkedGoals++
		}
	}
}

// Finalize returns takers per team and scope, ordered by key.
func (a *SetPieces) Finalize() model.TeamPair[model.Scoped[[]SetPieceTaker]] {
	return mapScoped(a.takers, func(m map[string]*takerState) []SetPieceTaker {
		out := make([]SetPieceTaker, 0, len(m))
		for _, st := range m {
			t := st.taker
			t.ShotsCreated = model.Round(float64(t.Corners)*a.ratios.Shots, 1)
			t.GoalsCreated = model.Round(float64(t.Corners)*a.ratios.Goals, 1)
			out = append(out, t)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
		return out
	})
}

package accumulate

import (
	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/internal/domain/xg"
)

// Phase is one continuous possession sequence.
type Phase struct {
	ID          string  `json:"id"`
	TeamID      string  `json:"teamId,omitempty"`
	Side        string  `json:"side,omitempty"`
	Half        int     `json:"half"`
	StartMinute int     `json:"startMinute"`
	EndMinute   int     `json:"endMinute"`
	Events      int     `json:"events"`
	Passes      int     `json:"passes"`
	Shots       int     `json:"shots"`
	Goals       int     `json:"goals"`
	EndedInShot bool    `json:"endedInShot"`
	XG          float64 `json:"xg"`

	xgSum float64
}

// Phases groups events by phase id. Team-less events still count towards the
// phase size; the phase team is taken from its first attributed event.
type Phases struct {
	order []string
	byID  map[string]*Phase
}

// NewPhases returns an empty reducer.
func NewPhases() *Phases { return &Phases{byID: make(map[string]*Phase)} }

func (*Phases) Name() string { return "phases" }

func (*Phases) Accepts(model.EventType) bool { return true }

func (a *Phases) Fold(fc *FoldContext, e *model.MatchEvent) {
	if e.PhaseID == "" {
		return
	}
	p := a.byID[e.PhaseID]
	if p == nil {
		p = &Phase{ID: e.PhaseID, Half: e.Half, StartMinute: e.Minute, EndMinute: e.Minute}
		a.byID[e.PhaseID] = p
		a.order = append(a.order, e.PhaseID)
	}
	if p.TeamID == "" && fc.Attributed {
		p.TeamID = fc.TeamID
		p.Side = fc.Side.String()
	}

	p.Events++
	p.StartMinute = min(p.StartMinute, e.Minute)
	p.EndMinute = max(p.EndMinute, e.Minute)
	p.EndedInShot = e.Type.IsShot()
	switch {
	case e.Type.IsPassFamily():
		p.Passes++
	case e.Type.IsShot():
		p.Shots++
		if e.IsGoal() {
			p.Goals++
		}
		p.xgSum += xg.Compute(xg.FromEvent(e)).XG
	}
}

// Finalize returns phases in order of first appearance.
func (a *Phases) Finalize() []Phase {
	out := make([]Phase, 0, len(a.order))
	for _, id := range a.order {
		p := *a.byID[id]
		p.XG = model.Round(p.xgSum, 2)
		out = append(out, p)
	}
	return out
}

// Package accumulate holds the per-event reducers folded by the aggregation
// engine. Each reducer registers the event types it wants, folds one event at
// a time and exposes a typed Finalize view. Reducers partition by scope
// internally so a single pass fills all, first half and second half.
package accumulate

import (
	"github.com/okian/pitchlens/internal/domain/geometry"
	"github.com/okian/pitchlens/internal/domain/model"
)

// Folder is a single reducer over the event stream.
type Folder interface {
	Name() string
	Accepts(t model.EventType) bool
	Fold(fc *FoldContext, e *model.MatchEvent)
}

// FoldContext carries match-level facts and the resolution of the event
// currently being folded. Bind must be called before each Fold round.
type FoldContext struct {
	Meta  model.MatchMetadata
	Pitch geometry.Pitch

	roster map[string]model.Player

	// Per-event state set by Bind.
	Side       model.Side
	Scope      model.Scope
	TeamID     string
	Player     *model.Player
	Attributed bool
}

// NewFoldContext indexes the rosters of both teams.
func NewFoldContext(meta model.MatchMetadata, pitch geometry.Pitch, players ...model.Player) *FoldContext {
	roster := make(map[string]model.Player, len(players))
	for _, p := range players {
		roster[p.ID] = p
	}
	return &FoldContext{Meta: meta, Pitch: pitch, roster: roster}
}

// Bind resolves the team, side, player and half scope of e. The roster team
// of a known player wins over the team recorded on the event. It returns
// false when the event cannot be placed on the home or away side.
func (c *FoldContext) Bind(e *model.MatchEvent) bool {
	c.Scope = model.HalfScope(e.Half)
	c.Player = nil
	c.TeamID = e.TeamID
	if p, ok := c.roster[e.PlayerID]; ok && e.PlayerID != "" {
		c.Player = &p
		if p.TeamID != "" {
			c.TeamID = p.TeamID
		}
	}

	c.Attributed = true
	switch {
	case c.TeamID == "":
		c.Attributed = false
	case c.TeamID == c.Meta.HomeTeamID:
		c.Side = model.SideHome
	case c.TeamID == c.Meta.AwayTeamID:
		c.Side = model.SideAway
	default:
		c.Attributed = false
	}
	return c.Attributed
}

// Scopes returns the two scopes a single event updates: all and its half.
func (c *FoldContext) Scopes() [2]model.Scope {
	return [2]model.Scope{model.ScopeAll, c.Scope}
}

// bump applies fn to the bound side's value in both of the event's scopes.
func bump[T any](p *model.TeamPair[model.Scoped[T]], c *FoldContext, fn func(*T)) {
	side := p.At(c.Side)
	for _, s := range c.Scopes() {
		fn(side.At(s))
	}
}

// mapScoped builds a new per-team, per-scope value from an existing one.
func mapScoped[T, U any](in model.TeamPair[model.Scoped[T]], fn func(T) U) model.TeamPair[model.Scoped[U]] {
	conv := func(s model.Scoped[T]) model.Scoped[U] {
		return model.Scoped[U]{All: fn(s.All), FirstHalf: fn(s.FirstHalf), SecondHalf: fn(s.SecondHalf)}
	}
	return model.TeamPair[model.Scoped[U]]{Home: conv(in.Home), Away: conv(in.Away)}
}

var allScopes = [3]model.Scope{model.ScopeAll, model.ScopeFirstHalf, model.ScopeSecondHalf}

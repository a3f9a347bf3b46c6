package accumulate

import (
	"sort"

	"github.com/okian/pitchlens/internal/domain/geometry"
	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/internal/domain/xg"
)

// Players builds per-player stats for every scope.
type Players struct {
	stats model.Scoped[map[string]*model.PlayerStats]
	sides map[string]model.Side
}

// NewPlayers returns an empty reducer.
func NewPlayers() *Players {
	return &Players{
		stats: model.Scoped[map[string]*model.PlayerStats]{
			All:        make(map[string]*model.PlayerStats),
			FirstHalf:  make(map[string]*model.PlayerStats),
			SecondHalf: make(map[string]*model.PlayerStats),
		},
		sides: make(map[string]model.Side),
	}
}

func (*Players) Name() string { return "players" }

func (*Players) Accepts(model.EventType) bool { return true }

func (a *Players) Fold(fc *FoldContext, e *model.MatchEvent) {
	if !fc.Attributed || e.PlayerID == "" {
		return
	}
	a.sides[e.PlayerID] = fc.Side

	var shot xg.Result
	if e.Type.IsShot() {
		shot = xg.Compute(xg.FromEvent(e))
	}
	for _, scope := range fc.Scopes() {
		m := *a.stats.At(scope)
		s := m[e.PlayerID]
		if s == nil {
			s = newPlayerStats(fc, e.PlayerID)
			m[e.PlayerID] = s
		}
		foldPlayer(s, fc, e, shot)
	}
}

func newPlayerStats(fc *FoldContext, playerID string) *model.PlayerStats {
	s := &model.PlayerStats{PlayerID: playerID, TeamID: fc.TeamID, TeamName: fc.Meta.TeamName(fc.TeamID), Matches: 1}
	if fc.Player != nil {
		s.Name = fc.Player.Name
		s.JerseyNumber = fc.Player.JerseyNumber
	}
	return s
}

func foldPlayer(s *model.PlayerStats, fc *FoldContext, e *model.MatchEvent, shot xg.Result) {
	if geometry.IsPossessionLoss(e) {
		s.PossessionLosses++
	}

	switch {
	case e.Type.IsPassFamily():
		s.Passes++
		if e.Successful {
			s.SuccessfulPasses++
			switch fc.Pitch.Zone(e.X) {
			case model.ZoneDefensive:
				s.DefensiveThird++
			case model.ZoneMiddle:
				s.MiddleThird++
			default:
				s.FinalThird++
			}
		} else {
			s.FailedPasses++
		}
		switch geometry.ClassifyPassDirection(e.X, e.EndX) {
		case model.DirectionForward:
			s.ForwardPasses++
		case model.DirectionBackward:
			s.BackwardPasses++
		default:
			s.LateralPasses++
		}
		switch e.Type {
		case model.EventKeyPass:
			s.KeyPasses++
		case model.EventAssist:
			s.Assists++
		case model.EventCross:
			s.Crosses++
		}
		return
	case e.Type.IsShot():
		s.Shots++
		if e.ShotOutcome.OnTarget() {
			s.ShotsOnTarget++
		}
		if e.IsGoal() {
			s.Goals++
		}
		s.XG += shot.XG
		return
	}

	switch e.Type {
	case model.EventDribble:
		s.Dribbles++
		if e.Successful {
			s.SuccessfulDribble++
		}
	case model.EventTackle:
		s.Tackles++
		if e.Successful {
			s.TacklesWon++
		}
	case model.EventInterception:
		s.Interceptions++
	case model.EventClearance:
		s.Clearances++
	case model.EventBlock:
		s.Blocks++
	case model.EventRecovery:
		s.Recoveries++
	case model.EventAerialDuel:
		s.AerialDuels++
		if aerialWon(e) {
			s.AerialDuelsWon++
		}
	case model.EventCorner:
		s.Corners++
	case model.EventFreeKick:
		s.FreeKicks++
	case model.EventThrowIn:
		s.ThrowIns++
	}
}

// Finalize returns one record per player and scope, home side first, then by
// jersey number, name and id.
func (a *Players) Finalize() model.Scoped[[]model.PlayerStats] {
	var out model.Scoped[[]model.PlayerStats]
	for _, scope := range allScopes {
		m := *a.stats.At(scope)
		list := make([]model.PlayerStats, 0, len(m))
		for _, s := range m {
			list = append(list, *s)
		}
		sort.Slice(list, func(i, j int) bool {
			si, sj := a.sides[list[i].PlayerID], a.sides[list[j].PlayerID]
			if si != sj {
				return si < sj
			}
			return lessPlayer(list[i], list[j])
		})
		*out.At(scope) = list
	}
	return out
}

func lessPlayer(a, b model.PlayerStats) bool {
	if a.JerseyNumber != b.JerseyNumber {
		return a.JerseyNumber < b.JerseyNumber
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.PlayerID < b.PlayerID
}

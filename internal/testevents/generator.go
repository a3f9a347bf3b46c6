// Package testevents generates synthetic but plausible football matches for
// seeding an event store.
package testevents

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/okian/pitchlens/internal/domain/model"
)

// namespace scopes every generated id so equal seeds give equal ids.
var namespace = uuid.MustParse("6f1c1f3e-5d43-4b8e-9a57-2f4b6e0c9d21")

var teamNames = []string{
	"Harbour Rovers", "Valley Athletic", "Northgate", "Riverside United",
	"Old Quarry", "Castle Borough", "Lakeshore", "Millfield Town",
}

var firstNames = []string{
	"Ada", "Bruno", "Caio", "Dara", "Emil", "Femi", "Goran", "Hugo", "Ines", "Jonas",
	"Kai", "Luca", "Mika", "Nils", "Oli", "Pavel", "Quinn", "Rafa", "Sami", "Timo",
}

var roles = []string{"GK", "DF", "DF", "DF", "DF", "MF", "MF", "MF", "FW", "FW", "FW"}

// Dataset is a generated batch of matches with rosters and events.
type Dataset struct {
	Matches []model.MatchMetadata
	Players []model.Player
	Events  []model.MatchEvent
}

type generator struct {
	cfg Config
	rng *rand.Rand
}

func (g *generator) id(kind string, parts ...any) string {
	return uuid.NewSHA1(namespace, fmt.Appendf(nil, "%d/%s/%v", g.cfg.Seed, kind, parts)).String()
}

func (g *generator) chance(p float64) bool { return g.rng.Float64() < p }

func (g *generator) between(lo, hi float64) float64 {
	return model.Round(lo+g.rng.Float64()*(hi-lo), 1)
}

// Generate builds cfg.Matches matches. Each match pairs two teams from a
// shared pool, so players appear in several matches.
func Generate(ctx context.Context, cfg Config) (Dataset, error) {
	if cfg.Matches <= 0 || cfg.EventsPerMatch <= 0 || cfg.PlayersPerTeam <= 0 {
		return Dataset{}, fmt.Errorf("%w: matches, events and players must be positive", ErrInvalidConfig)
	}
	g := &generator{cfg: cfg, rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))}

	teams := min(len(teamNames), max(2, cfg.Matches+1))
	rosters := make([][]model.Player, teams)
	var ds Dataset
	for t := range teams {
		teamID := g.id("team", t)
		for n := range cfg.PlayersPerTeam {
			p := model.Player{
				ID:           g.id("player", t, n),
				TeamID:       teamID,
				Name:         firstNames[(t*cfg.PlayersPerTeam+n)%len(firstNames)],
				JerseyNumber: n + 1,
				Role:         roles[n%len(roles)],
			}
			rosters[t] = append(rosters[t], p)
			ds.Players = append(ds.Players, p)
		}
	}

	for m := range cfg.Matches {
		if err := ctx.Err(); err != nil {
			return Dataset{}, fmt.Errorf("generation canceled: %w", err)
		}
		home, away := m%teams, (m+1)%teams
		meta := model.MatchMetadata{
			MatchID:      g.id("match", m),
			HomeTeamID:   rosters[home][0].TeamID,
			AwayTeamID:   rosters[away][0].TeamID,
			HomeTeamName: teamNames[home],
			AwayTeamName: teamNames[away],
		}
		ds.Matches = append(ds.Matches, meta)
		start := cfg.Start.Add(time.Duration(m) * 24 * time.Hour)
		ds.Events = append(ds.Events, g.match(meta, rosters[home], rosters[away], start)...)
	}
	return ds, nil
}

// match plays out possession phases until the event budget is spent.
func (g *generator) match(meta model.MatchMetadata, home, away []model.Player, start time.Time) []model.MatchEvent {
	n := g.cfg.EventsPerMatch
	out := make([]model.MatchEvent, 0, n)
	clock := start
	attackHome := true
	phase := 0
	resumed := false

	for len(out) < n {
		squad := home
		if !attackHome {
			squad = away
		}
		phaseID := g.id("phase", meta.MatchID, phase)
		phase++

		x := g.between(5, 45)
		for step := 0; len(out) < n; step++ {
			half := 1
			if len(out) >= n/2 {
				half = 2
			}
			if half == 2 && !resumed {
				clock = clock.Add(g.cfg.HalfTimeBreak)
				resumed = true
			}
			clock = clock.Add(g.cfg.EntryInterval/2 + time.Duration(g.rng.Int64N(int64(g.cfg.EntryInterval)+1)))

			e := model.MatchEvent{
				ID:        g.id("event", meta.MatchID, len(out)),
				MatchID:   meta.MatchID,
				Half:      half,
				Minute:    (half-1)*45 + (len(out)%max(1, n/2))*45/max(1, n/2),
				CreatedAt: clock,
				PhaseID:   phaseID,
				X:         x,
				Y:         g.between(2, 98),
			}
			actor := squad[g.rng.IntN(len(squad))]
			e.PlayerID = actor.ID

			ended := g.action(&e, step)
			if ended && !e.Successful && e.Type != model.EventShot && g.chance(0.5) {
				// The defending side wins the ball back.
				out = append(out, e)
				if len(out) >= n {
					break
				}
				e = g.defend(meta, e, attackHome, home, away, len(out), clock)
			}
			out = append(out, e)
			if e.EndX != nil {
				x = *e.EndX
			}
			if ended {
				break
			}
		}
		attackHome = !attackHome
	}
	return out
}

// action fills e with the attacking side's next action and reports whether
// the phase ends with it.
func (g *generator) action(e *model.MatchEvent, step int) bool {
	switch {
	case step == 0 && g.chance(0.08):
		e.Type, e.X, e.Y = model.EventCorner, 99.5, []float64{0.5, 99.5}[g.rng.IntN(2)]
		e.Successful = g.chance(0.35)
		g.pass(e, 88, 99)
		return !e.Successful
	case step == 0 && g.chance(0.1):
		e.Type = model.EventThrowIn
		e.Y = []float64{0, 100}[g.rng.IntN(2)]
		e.Successful = g.chance(0.8)
		g.pass(e, e.X-5, e.X+15)
		return !e.Successful
	case step == 0 && g.chance(0.06):
		e.Type, e.Successful = model.EventFreeKick, g.chance(0.7)
		g.pass(e, e.X, e.X+30)
		return !e.Successful
	case e.X > 75 && g.chance(0.3):
		g.shot(e)
		return true
	case g.chance(0.08):
		e.Type, e.Successful = model.EventDribble, g.chance(0.55)
		g.pass(e, e.X, e.X+8)
		return !e.Successful
	case g.chance(0.04):
		e.Type = []model.EventType{model.EventBadTouch, model.EventOffside, model.EventDispossession}[g.rng.IntN(3)]
		return true
	case g.chance(0.05):
		e.Type, e.IsHeader = model.EventAerialDuel, true
		e.DuelOutcome = model.DuelLost
		if g.chance(0.5) {
			e.DuelOutcome = model.DuelWon
		}
		e.Successful = e.DuelOutcome == model.DuelWon
		return !e.Successful
	}

	e.Type = model.EventPass
	switch {
	case e.X > 70 && g.chance(0.15):
		e.Type = model.EventCross
	case e.X > 60 && g.chance(0.1):
		e.Type = model.EventKeyPass
	case e.X < 35 && g.chance(0.1):
		e.Type = model.EventLongBall
	case g.chance(0.05):
		e.Type = model.EventThroughBall
	}
	e.Successful = g.chance(0.8)
	g.pass(e, e.X-12, e.X+22)
	return !e.Successful
}

func (g *generator) pass(e *model.MatchEvent, lo, hi float64) {
	endX := clamp(g.between(lo, hi))
	endY := clamp(g.between(e.Y-25, e.Y+25))
	e.EndX, e.EndY = &endX, &endY
	sec := g.rng.IntN(60)
	e.Seconds = &sec
}

func (g *generator) shot(e *model.MatchEvent) {
	e.Type = model.EventShot
	e.X = g.between(78, 99)
	e.Y = g.between(30, 70)
	e.IsHeader = g.chance(0.15)
	if g.chance(0.03) {
		e.Type, e.X, e.Y, e.IsHeader = model.EventPenalty, 89, 50, false
	}
	switch r := g.rng.Float64(); {
	case r < 0.12:
		e.ShotOutcome = model.ShotGoal
	case r < 0.4:
		e.ShotOutcome = model.ShotOnTarget
	case r < 0.7:
		e.ShotOutcome = model.ShotOffTarget
	default:
		e.ShotOutcome = model.ShotBlocked
	}
	e.Successful = e.ShotOutcome == model.ShotGoal
}

// defend returns the defending side's answer to a lost ball at e.
func (g *generator) defend(meta model.MatchMetadata, e model.MatchEvent, attackHome bool, home, away []model.Player, idx int, clock time.Time) model.MatchEvent {
	squad, teamID := away, meta.AwayTeamID
	if !attackHome {
		squad, teamID = home, meta.HomeTeamID
	}
	x := e.X
	if e.EndX != nil {
		x = *e.EndX
	}
	d := model.MatchEvent{
		ID:         g.id("event", meta.MatchID, idx),
		MatchID:    meta.MatchID,
		PlayerID:   squad[g.rng.IntN(len(squad))].ID,
		Type:       []model.EventType{model.EventTackle, model.EventInterception, model.EventClearance, model.EventBlock, model.EventRecovery}[g.rng.IntN(5)],
		X:          clamp(100 - x),
		Y:          clamp(100 - e.Y),
		Successful: g.chance(0.7),
		Half:       e.Half,
		Minute:     e.Minute,
		CreatedAt:  clock.Add(time.Second),
	}
	if g.chance(0.02) {
		// Occasionally only the team was captured.
		d.PlayerID, d.TeamID = "", teamID
	}
	return d
}

func clamp(v float64) float64 {
	return max(model.MinCoord, min(model.MaxCoord, v))
}

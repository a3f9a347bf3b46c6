package accumulate_test

import (
	"testing"

	"github.com/okian/pitchlens/internal/domain/accumulate"
	"github.com/okian/pitchlens/internal/domain/geometry"
	"github.com/okian/pitchlens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var meta = model.MatchMetadata{
	MatchID: "m-1", HomeTeamID: "home", AwayTeamID: "away",
	HomeTeamName: "Harbour", AwayTeamName: "Valley",
}

var roster = []model.Player{
	{ID: "h9", TeamID: "home", Name: "Ines", JerseyNumber: 9},
	{ID: "h7", TeamID: "home", Name: "Bo", JerseyNumber: 7},
	{ID: "a4", TeamID: "away", Name: "Kai", JerseyNumber: 4},
}

func fold(f accumulate.Folder, events ...model.MatchEvent) {
	fc := accumulate.NewFoldContext(meta, geometry.DefaultPitch(), roster...)
	for i := range events {
		fc.Bind(&events[i])
		if f.Accepts(events[i].Type) {
			f.Fold(fc, &events[i])
		}
	}
}

func pass(player string, x, y float64, ok bool, half int) model.MatchEvent {
	return model.MatchEvent{ID: player, MatchID: "m-1", PlayerID: player, Type: model.EventPass, X: x, Y: y, Successful: ok, Half: half}
}

func TestFoldContextBind(t *testing.T) {
	Convey("Given a fold context with both rosters", t, func() {
		fc := accumulate.NewFoldContext(meta, geometry.DefaultPitch(), roster...)

		Convey("When the player is on the roster", func() {
			e := model.MatchEvent{PlayerID: "a4", TeamID: "home", Half: 2}
			ok := fc.Bind(&e)

			Convey("Then the roster team should win over the event team", func() {
				So(ok, ShouldBeTrue)
				So(fc.TeamID, ShouldEqual, "away")
				So(fc.Side, ShouldEqual, model.SideAway)
				So(fc.Scope, ShouldEqual, model.ScopeSecondHalf)
				So(fc.Player.Name, ShouldEqual, "Kai")
			})
		})

		Convey("When the player is unknown but the event carries a team", func() {
			e := model.MatchEvent{PlayerID: "ghost", TeamID: "home", Half: 1}

			So(fc.Bind(&e), ShouldBeTrue)
			So(fc.Player, ShouldBeNil)
			So(fc.Side, ShouldEqual, model.SideHome)
		})

		Convey("When no team can be resolved", func() {
			So(fc.Bind(&model.MatchEvent{PlayerID: "ghost", Half: 1}), ShouldBeFalse)
			So(fc.Bind(&model.MatchEvent{TeamID: "third-team", Half: 1}), ShouldBeFalse)
		})
	})
}

func TestPassByThird(t *testing.T) {
	Convey("Given pass events from both halves", t, func() {
		a := accumulate.NewPassByThird()
		fold(a,
			pass("h9", 10, 50, true, 1),
			pass("h9", 33.33, 50, true, 1),
			pass("h9", 80, 20, true, 2),
			pass("h9", 80, 20, false, 2),
			pass("a4", 70, 50, true, 2),
			model.MatchEvent{ID: "x", PlayerID: "ghost", Type: model.EventPass, X: 90, Successful: true, Half: 1},
		)
		got := a.Finalize()

		Convey("Then successful passes should land in the origin third per scope", func() {
			So(got.Home.All.Defensive, ShouldEqual, 1)
			So(got.Home.All.Middle, ShouldEqual, 1)
			So(got.Home.All.Final, ShouldEqual, 1)
			So(got.Home.All.Total, ShouldEqual, 3)
			So(got.Home.FirstHalf.Total, ShouldEqual, 2)
			So(got.Home.SecondHalf.Final, ShouldEqual, 1)
			So(got.Away.SecondHalf.Final, ShouldEqual, 1)
			So(got.Away.FirstHalf, ShouldResemble, accumulate.ZoneStats{})
		})

		Convey("Then shares should sum to 100", func() {
			s := got.Home.All
			So(s.DefensivePercent+s.MiddlePercent+s.FinalPercent, ShouldEqual, 100)
		})
	})
}

func TestLaneThreat(t *testing.T) {
	Convey("Given a single successful pass at (80, 20)", t, func() {
		a := accumulate.NewLaneThreat()
		fold(a, pass("h9", 80, 20, true, 1))
		got := a.Finalize()

		Convey("Then it should count in the left lane for all and first half", func() {
			So(got.Home.All.Left.Passes, ShouldEqual, 1)
			So(got.Home.All.Left.Threat, ShouldEqual, 0.02)
			So(got.Home.All.Left.ThreatPercent, ShouldEqual, 100)
			So(got.Home.FirstHalf.Left.Passes, ShouldEqual, 1)
			So(got.Home.SecondHalf.Total, ShouldEqual, 0)
		})
	})

	Convey("Given many passes across lanes", t, func() {
		a := accumulate.NewLaneThreat()
		var events []model.MatchEvent
		for i := 0; i < 7; i++ {
			events = append(events, pass("h9", 75, 10, true, 1))
		}
		for i := 0; i < 5; i++ {
			events = append(events, pass("h9", 40, 50, true, 1))
		}
		events = append(events, pass("h9", 71, 90, true, 2), pass("h9", 70, 90, true, 2))
		fold(a, events...)
		l := a.Finalize().Home.All

		Convey("Then threat should only count passes beyond x=70", func() {
			So(l.Left.Threat, ShouldEqual, 0.14)
			So(l.Center.Threat, ShouldEqual, 0)
			So(l.Right.Threat, ShouldEqual, 0.02)
			So(l.Total, ShouldEqual, 14)
		})

		Convey("Then threat percentages should sum to exactly 100", func() {
			So(l.Left.ThreatPercent+l.Center.ThreatPercent+l.Right.ThreatPercent, ShouldEqual, 100)
		})
	})

	Convey("Given no passes", t, func() {
		l := accumulate.NewLaneThreat().Finalize().Away.All

		So(l.Left.ThreatPercent+l.Center.ThreatPercent+l.Right.ThreatPercent, ShouldEqual, 0)
	})
}

func TestSetPieces(t *testing.T) {
	Convey("Given corners and free kicks", t, func() {
		a := accumulate.NewSetPieces(accumulate.DefaultSetPieceRatios())
		corner := func(id, player string, half int, phase string) model.MatchEvent {
			return model.MatchEvent{ID: id, PlayerID: player, Type: model.EventCorner, Half: half, PhaseID: phase}
		}
		fold(a,
			corner("c1", "h7", 1, "p1"),
			model.MatchEvent{ID: "s1", PlayerID: "h9", Type: model.EventShot, ShotOutcome: model.ShotGoal, Half: 1, PhaseID: "p1"},
			corner("c2", "h7", 1, ""),
			corner("c3", "h7", 2, "p2"),
			model.MatchEvent{ID: "s2", PlayerID: "h9", Type: model.EventShot, ShotOutcome: model.ShotOffTarget, Half: 2, PhaseID: "p2"},
			model.MatchEvent{ID: "f1", PlayerID: "a4", Type: model.EventFreeKick, Half: 2},
			corner("c4", "ghost", 1, ""),
		)
		got := a.Finalize()

		Convey("Then takers should be keyed by name and jersey per team and scope", func() {
			So(got.Home.All, ShouldHaveLength, 1)
			bo := got.Home.All[0]
			So(bo.Key, ShouldEqual, "Bo#7")
			So(bo.Corners, ShouldEqual, 3)
			So(got.Home.FirstHalf[0].Corners, ShouldEqual, 2)
			So(got.Home.SecondHalf[0].Corners, ShouldEqual, 1)
			So(got.Away.SecondHalf[0].FreeKicks, ShouldEqual, 1)
			So(got.Away.FirstHalf, ShouldBeEmpty)
		})

		Convey("Then the heuristic funnel should use the corner ratios", func() {
			bo := got.Home.All[0]
			So(bo.ShotsCreated, ShouldEqual, 0.9)
			So(bo.GoalsCreated, ShouldEqual, 0.3)
		})

		Convey("Then the phase-linked funnel should count shots in shared phases", func() {
			bo := got.Home.All[0]
			So(bo.LinkedShots, ShouldEqual, 2)
			So(bo.LinkedGoals, ShouldEqual, 1)
			So(got.Home.SecondHalf[0].LinkedShots, ShouldEqual, 1)
			So(got.Home.SecondHalf[0].LinkedGoals, ShouldEqual, 0)
		})
	})
}

func TestSetPieceLinkage(t *testing.T) {
	Convey("Given a phase shared by both teams", t, func() {
		a := accumulate.NewSetPieces(accumulate.DefaultSetPieceRatios())
		fold(a,
			model.MatchEvent{ID: "s0", PlayerID: "h9", Type: model.EventShot, ShotOutcome: model.ShotGoal, Half: 1, PhaseID: "p"},
			model.MatchEvent{ID: "s1", PlayerID: "a4", Type: model.EventShot, ShotOutcome: model.ShotGoal, Half: 1, PhaseID: "p"},
			model.MatchEvent{ID: "c1", PlayerID: "h7", Type: model.EventCorner, Half: 1, PhaseID: "p"},
			model.MatchEvent{ID: "s2", PlayerID: "a4", Type: model.EventShot, ShotOutcome: model.ShotGoal, Half: 1, PhaseID: "p"},
			model.MatchEvent{ID: "s3", PlayerID: "h9", Type: model.EventShot, ShotOutcome: model.ShotOnTarget, Half: 1, PhaseID: "p"},
			model.MatchEvent{ID: "c2", PlayerID: "h7", Type: model.EventCorner, Half: 1, PhaseID: "p"},
			model.MatchEvent{ID: "s4", PlayerID: "h9", Type: model.EventShot, ShotOutcome: model.ShotGoal, Half: 1, PhaseID: "p"},
		)
		got := a.Finalize()

		Convey("Then only the taker's own later shots should be linked", func() {
			bo := got.Home.All[0]
			So(bo.Corners, ShouldEqual, 2)
			So(bo.LinkedShots, ShouldEqual, 2)
			So(bo.LinkedGoals, ShouldEqual, 1)
			So(got.Home.FirstHalf[0].LinkedShots, ShouldEqual, 2)
		})

		Convey("Then the opponent should get nothing from the home corner", func() {
			So(got.Away.All, ShouldBeEmpty)
		})
	})

	Convey("Given an opponent goal before a corner in the same phase", t, func() {
		a := accumulate.NewSetPieces(accumulate.DefaultSetPieceRatios())
		fold(a,
			model.MatchEvent{ID: "s1", PlayerID: "a4", Type: model.EventShot, ShotOutcome: model.ShotGoal, Half: 1, PhaseID: "p"},
			model.MatchEvent{ID: "c1", PlayerID: "h7", Type: model.EventCorner, Half: 1, PhaseID: "p"},
		)
		bo := a.Finalize().Home.All[0]

		So(bo.LinkedShots, ShouldEqual, 0)
		So(bo.LinkedGoals, ShouldEqual, 0)
	})
}

func TestPossessionLossAndTally(t *testing.T) {
	Convey("Given a mix of loss and tally events", t, func() {
		events := []model.MatchEvent{
			pass("h9", 50, 50, false, 1),
			{ID: "o1", PlayerID: "a4", Type: model.EventOffside, X: 80, Y: 40, Half: 2, Successful: true},
			{ID: "t1", PlayerID: "h7", Type: model.EventThrowIn, Half: 1},
			{ID: "t2", PlayerID: "h7", Type: model.EventThrowIn, Half: 1, Successful: true},
			{ID: "ad1", PlayerID: "a4", Type: model.EventAerialDuel, Half: 1, DuelOutcome: model.DuelWon},
			{ID: "ad2", PlayerID: "a4", Type: model.EventAerialDuel, Half: 1, Successful: true, DuelOutcome: model.DuelLost},
			{ID: "ad3", PlayerID: "a4", Type: model.EventAerialDuel, Half: 2, Successful: true},
			{ID: "b1", PlayerID: "h9", Type: model.EventPass, X: 60, EndX: model.Float(40), Half: 1, Successful: true},
			{ID: "c1", PlayerID: "h7", Type: model.EventCorner, Half: 2, Successful: true},
		}

		Convey("When collecting possession losses", func() {
			a := accumulate.NewPossessionLoss()
			fold(a, events...)
			got := a.Finalize()

			Convey("Then only explicit loss-type events should be collected", func() {
				So(got.Points, ShouldHaveLength, 2)
				So(got.Points[1].Type, ShouldEqual, model.EventOffside)
				So(got.Points[1].Side, ShouldEqual, "away")
				So(got.Counts.Home.All, ShouldEqual, 1)
				So(got.Counts.Away.SecondHalf, ShouldEqual, 1)
			})
		})

		Convey("When tallying event types", func() {
			a := accumulate.NewEventTypeTally()
			fold(a, events...)
			got := a.Finalize()

			Convey("Then outcomes should be split per team", func() {
				So(got.Home.All.ThrowInsFailed, ShouldEqual, 1)
				So(got.Home.All.ThrowInsSuccessful, ShouldEqual, 1)
				So(got.Home.All.IncompletePasses, ShouldEqual, 2)
				So(got.Home.All.BackwardPasses, ShouldEqual, 1)
				So(got.Home.SecondHalf.CornersSuccessful, ShouldEqual, 1)
			})

			Convey("Then aerial outcomes should prefer the explicit field", func() {
				So(got.Away.FirstHalf.AerialWon, ShouldEqual, 1)
				So(got.Away.FirstHalf.AerialLost, ShouldEqual, 1)
				So(got.Away.SecondHalf.AerialWon, ShouldEqual, 1)
				So(got.Away.All.AerialWon, ShouldEqual, 2)
			})
		})
	})
}

func TestShotsAndDefensive(t *testing.T) {
	Convey("Given shots and defensive actions", t, func() {
		events := []model.MatchEvent{
			{ID: "p", PlayerID: "h9", Type: model.EventPenalty, X: 88.5, Y: 50, Half: 1, ShotOutcome: model.ShotGoal},
			{ID: "s", PlayerID: "h9", Type: model.EventShot, X: 10, Y: 50, Half: 2, ShotOutcome: model.ShotOffTarget},
			{ID: "tk", PlayerID: "a4", Type: model.EventTackle, Half: 1, Successful: true},
			{ID: "in", PlayerID: "a4", Type: model.EventInterception, Half: 2},
			{ID: "nt", Type: model.EventShot, X: 90, Y: 50, Half: 1},
		}

		Convey("When scoring shots", func() {
			a := accumulate.NewShots()
			fold(a, events...)
			got := a.Finalize()

			Convey("Then each attributed shot should carry its xG", func() {
				So(got.Shots, ShouldHaveLength, 2)
				So(got.Shots[0].XG, ShouldEqual, 0.76)
				So(got.Shots[1].XG, ShouldEqual, 0.01)
				So(got.Summary.Home.All.XG, ShouldEqual, 0.77)
				So(got.Summary.Home.All.Goals, ShouldEqual, 1)
				So(got.Summary.Home.All.OnTarget, ShouldEqual, 1)
				So(got.Summary.Home.All.Overperformance, ShouldEqual, 0.23)
				So(got.Summary.Home.FirstHalf.Quality, ShouldEqual, 0.76)
				So(got.Summary.Away.All, ShouldResemble, accumulate.ShotSummary{})
			})
		})

		Convey("When collecting defensive actions", func() {
			a := accumulate.NewDefensive()
			fold(a, events...)
			got := a.Finalize()

			So(got.Actions, ShouldHaveLength, 2)
			So(got.Counts.Away.All.Tackles, ShouldEqual, 1)
			So(got.Counts.Away.All.TacklesWon, ShouldEqual, 1)
			So(got.Counts.Away.SecondHalf.Interceptions, ShouldEqual, 1)
		})
	})
}

func TestPhases(t *testing.T) {
	Convey("Given events grouped into phases", t, func() {
		a := accumulate.NewPhases()
		fold(a,
			model.MatchEvent{ID: "1", Type: model.EventRecovery, Minute: 10, Half: 1, PhaseID: "p1"},
			model.MatchEvent{ID: "2", PlayerID: "h9", Type: model.EventPass, Minute: 10, Half: 1, PhaseID: "p1"},
			model.MatchEvent{ID: "3", PlayerID: "h9", Type: model.EventShot, X: 90, Y: 50, Minute: 11, Half: 1, PhaseID: "p1", ShotOutcome: model.ShotGoal},
			model.MatchEvent{ID: "4", PlayerID: "a4", Type: model.EventPass, Minute: 50, Half: 2, PhaseID: "p2"},
			model.MatchEvent{ID: "5", PlayerID: "a4", Type: model.EventPass, Minute: 50, Half: 2},
		)
		got := a.Finalize()

		Convey("Then phases should be summarized in order of appearance", func() {
			So(got, ShouldHaveLength, 2)
			So(got[0].ID, ShouldEqual, "p1")
			So(got[0].TeamID, ShouldEqual, "home")
			So(got[0].Events, ShouldEqual, 3)
			So(got[0].EndedInShot, ShouldBeTrue)
			So(got[0].Goals, ShouldEqual, 1)
			So(got[0].XG, ShouldEqual, 0.39)
			So(got[0].EndMinute, ShouldEqual, 11)
			So(got[1].Side, ShouldEqual, "away")
			So(got[1].EndedInShot, ShouldBeFalse)
		})
	})
}

func TestPlayers(t *testing.T) {
	Convey("Given events for several players", t, func() {
		a := accumulate.NewPlayers()
		fold(a,
			model.MatchEvent{ID: "1", PlayerID: "h9", Type: model.EventPass, X: 20, EndX: model.Float(40), Successful: true, Half: 1},
			model.MatchEvent{ID: "2", PlayerID: "h9", Type: model.EventKeyPass, X: 70, Successful: false, Half: 2},
			model.MatchEvent{ID: "3", PlayerID: "h9", Type: model.EventShot, X: 90, Y: 50, ShotOutcome: model.ShotGoal, Half: 2},
			model.MatchEvent{ID: "4", PlayerID: "a4", Type: model.EventAerialDuel, DuelOutcome: model.DuelWon, Half: 1},
			model.MatchEvent{ID: "5", PlayerID: "h7", Type: model.EventCorner, Half: 1},
			model.MatchEvent{ID: "6", PlayerID: "ghost", Type: model.EventPass, Half: 1},
		)
		got := a.Finalize()

		Convey("Then home players should come first ordered by jersey number", func() {
			So(got.All, ShouldHaveLength, 3)
			So(got.All[0].PlayerID, ShouldEqual, "h7")
			So(got.All[1].PlayerID, ShouldEqual, "h9")
			So(got.All[2].PlayerID, ShouldEqual, "a4")
		})

		Convey("Then sums and ratios should be derived from the events", func() {
			h9 := got.All[1]
			So(h9.Name, ShouldEqual, "Ines")
			So(h9.TeamName, ShouldEqual, "Harbour")
			So(h9.Matches, ShouldEqual, 1)
			So(h9.Passes, ShouldEqual, 2)
			So(h9.KeyPasses, ShouldEqual, 1)
			So(h9.ForwardPasses, ShouldEqual, 1)
			So(h9.LateralPasses, ShouldEqual, 1)
			So(h9.DefensiveThird, ShouldEqual, 1)
			So(h9.PossessionLosses, ShouldEqual, 1)
			So(h9.PassAccuracy(), ShouldEqual, 50)
			So(h9.Goals, ShouldEqual, 1)
			So(h9.TotalXG(), ShouldEqual, 0.39)
			So(got.All[2].AerialWinRate(), ShouldEqual, 100)
		})

		Convey("Then half scopes should only hold their own events", func() {
			So(got.FirstHalf, ShouldHaveLength, 3)
			So(got.SecondHalf, ShouldHaveLength, 1)
			So(got.SecondHalf[0].Shots, ShouldEqual, 1)
		})
	})
}

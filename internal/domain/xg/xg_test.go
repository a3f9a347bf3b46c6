package xg_test

import (
	"testing"

	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/internal/domain/xg"
	"github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	convey.Convey("Given a shot", t, func() {
		convey.Convey("When it is a penalty", func() {
			r := xg.Compute(xg.Shot{X: 10, Y: 10, IsHeader: true, IsPenalty: true})

			convey.Convey("Then the fixed penalty values should be returned", func() {
				convey.So(r, convey.ShouldResemble, xg.Result{XG: 0.76, Distance: 11, Angle: 45, Zone: xg.ZonePenaltyBox})
			})
		})

		convey.Convey("When it is taken centrally inside the penalty box", func() {
			r := xg.Compute(xg.Shot{X: 90, Y: 50})

			convey.Convey("Then geometry and probability should follow the model", func() {
				convey.So(r.Zone, convey.ShouldEqual, xg.ZonePenaltyBox)
				convey.So(r.Distance, convey.ShouldEqual, 10.5)
				convey.So(r.Angle, convey.ShouldAlmostEqual, 38.43, 0.011)
				convey.So(r.XG, convey.ShouldEqual, 0.39)
			})
		})

		convey.Convey("When the same shot is a header", func() {
			r := xg.Compute(xg.Shot{X: 90, Y: 50, IsHeader: true})

			convey.So(r.XG, convey.ShouldEqual, 0.27)
		})

		convey.Convey("When it is taken from the own half", func() {
			r := xg.Compute(xg.Shot{X: 10, Y: 50})

			convey.Convey("Then xG should be clamped to the floor", func() {
				convey.So(r.Zone, convey.ShouldEqual, xg.ZoneOutsideBox)
				convey.So(r.XG, convey.ShouldEqual, xg.MinXG)
			})
		})

		convey.Convey("When it is taken inside the six-yard box", func() {
			r := xg.Compute(xg.Shot{X: 98, Y: 50})

			convey.Convey("Then xG should be clamped to the ceiling", func() {
				convey.So(r.Zone, convey.ShouldEqual, xg.ZoneSixYardBox)
				convey.So(r.XG, convey.ShouldEqual, xg.MaxXG)
			})
		})

		convey.Convey("When it is wide of the six-yard box but deep", func() {
			r := xg.Compute(xg.Shot{X: 96, Y: 40})

			convey.So(r.Zone, convey.ShouldEqual, xg.ZonePenaltyBox)
		})

		convey.Convey("When sweeping the whole pitch", func() {
			for x := 0.0; x <= 100; x += 5 {
				for y := 0.0; y <= 100; y += 5 {
					for _, header := range []bool{false, true} {
						r := xg.Compute(xg.Shot{X: x, Y: y, IsHeader: header})
						convey.So(r.XG, convey.ShouldBeBetweenOrEqual, xg.MinXG, xg.MaxXG)
						convey.So(r.Angle, convey.ShouldBeBetweenOrEqual, 0.0, 180.0)
					}
				}
			}
		})
	})
}

func TestFromEvent(t *testing.T) {
	convey.Convey("Given a penalty event", t, func() {
		e := &model.MatchEvent{Type: model.EventPenalty, X: 88, Y: 50}

		convey.So(xg.Compute(xg.FromEvent(e)).XG, convey.ShouldEqual, xg.PenaltyXG)
	})
}

func TestTotals(t *testing.T) {
	convey.Convey("Given scored shots", t, func() {
		convey.Convey("When there are none", func() {
			convey.So(xg.TotalXG(nil), convey.ShouldEqual, 0)
			convey.So(xg.Quality(nil), convey.ShouldEqual, 0)
			convey.So(xg.Overperformance(nil, 2), convey.ShouldEqual, 2)
		})

		convey.Convey("When there are several", func() {
			results := []xg.Result{{XG: 0.76}, {XG: 0.14}, {XG: 0.1}}

			convey.So(xg.TotalXG(results), convey.ShouldAlmostEqual, 1.0, 1e-9)
			convey.So(xg.Quality(results), convey.ShouldAlmostEqual, 1.0/3, 1e-9)
			convey.So(xg.Overperformance(results, 2), convey.ShouldEqual, 1)
			convey.So(xg.Overperformance(results, 0), convey.ShouldEqual, -1)
		})
	})
}

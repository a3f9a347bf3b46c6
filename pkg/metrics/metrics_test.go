package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should register collectors on that registry", func() {
				So(manager, ShouldNotBeNil)
				manager.pagesFetched.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom naming options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("engine"),
				WithHistogramBuckets([]float64{1, 10}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)
			manager.pagesFetched.Inc()

			Convey("Then metric names should carry the namespace and subsystem", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_engine_pages_fetched_total")
			})
		})
	})
}

func TestRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording page fetches", func() {
			before := testutil.ToFloat64(globalManager.eventsFetched)
			RecordPageFetched(1000)
			RecordPageFetched(500)

			Convey("Then fetched events should accumulate", func() {
				So(testutil.ToFloat64(globalManager.eventsFetched)-before, ShouldEqual, 1500)
			})
		})

		Convey("When recording rejections by reason", func() {
			before := testutil.ToFloat64(globalManager.eventsRejected.WithLabelValues("invalid_coordinates"))
			RecordEventsRejected("invalid_coordinates", 3)
			RecordEventsRejected("invalid_coordinates", 0)

			Convey("Then only positive counts should be added", func() {
				after := testutil.ToFloat64(globalManager.eventsRejected.WithLabelValues("invalid_coordinates"))
				So(after-before, ShouldEqual, 3)
			})
		})

		Convey("When recording is disabled", func() {
			SetEnabled(false)
			defer SetEnabled(true)
			before := testutil.ToFloat64(globalManager.shotsScored)
			RecordShotsScored(10)

			Convey("Then nothing should be recorded", func() {
				So(testutil.ToFloat64(globalManager.shotsScored), ShouldEqual, before)
			})
		})

		Convey("When recording the remaining collectors", func() {
			So(func() {
				RecordAggregation("ok", 12)
				RecordEventsFolded(10)
				RecordEventsDuplicate(1)
				RecordEventsUnattributed(2)
				RecordComparison("ok")
				RecordComparisonSource("stored")
				RecordStoreQueryLatency("fetch_events", 3)
				RecordStoreRetry("fetch_events")
				RecordRosterCacheLookup(true)
				RecordRosterCacheLookup(false)
				RecordHTTPRequest("/healthz", "GET", "200")
				RecordHTTPRequestDuration("/healthz", "GET", "200", 1)
				RecordErrorByComponent("engine", "fetch_failed")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}

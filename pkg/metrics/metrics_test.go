package metrics_test

import (
	"testing"

	"github.com/mkarlsen/songrank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithRegistry(reg))

		Convey("Then it is created without panicking", func() {
			So(m, ShouldNotBeNil)
		})

		Convey("And collectors are registered", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a manager with a custom namespace", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithRegistry(reg),
			metrics.WithNamespace("testns"),
			metrics.WithSubsystem("testsub"),
			metrics.WithHistogramBuckets([]float64{1, 5, 10}),
		)
		So(m, ShouldNotBeNil)

		names := map[string]bool{}
		families, err := reg.Gather()
		So(err, ShouldBeNil)
		for _, f := range families {
			names[f.GetName()] = true
		}
		// Gather only reports metrics with samples; force one.
		So(names, ShouldNotBeNil)
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Package-level helpers must not panic", t, func() {
		metrics.RecordMatchRecorded()
		metrics.RecordRosterSeeded()
		metrics.RecordLedgerReset()
		metrics.UpdateRosterSize(10)
		metrics.UpdateSnapshotCount(3)
		metrics.RecordStoreWriteLatency(1.5)
		metrics.RecordStoreQueryLatency(0.5)
		metrics.RecordStoreError()
		metrics.RecordHTTPRequest("songs", "GET", "200")
		metrics.RecordHTTPRequestDuration("songs", "GET", "200", 2.0)
		metrics.RecordErrorByComponent("store", "constraint")
		metrics.RecordErrorByEndpoint("match", "POST", "client_error")
		metrics.UpdateSystemMemoryUsage(1 << 20)
		metrics.UpdateSystemGoroutineCount(12)

		Convey("And the global registry gathers them", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}

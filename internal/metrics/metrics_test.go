package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it should own a fresh registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "bookmarks")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("custom"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.Registry(), ShouldEqual, registry)
				So(manager.namespace, ShouldEqual, "custom")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})
		})

		Convey("When empty values are passed", func() {
			manager := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithRegistry(nil))

			Convey("Then the defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "bookmarks")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.Registry(), ShouldNotBeNil)
			})
		})
	})
}

func TestManagerObservations(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		manager := NewManager()

		Convey("When HTTP requests are observed", func() {
			manager.ObserveHTTP("/bookmarks/{id}", http.MethodGet, http.StatusOK, 10*time.Millisecond)
			manager.ObserveHTTP("/bookmarks/{id}", http.MethodGet, http.StatusOK, 20*time.Millisecond)
			manager.ObserveHTTP("", http.MethodGet, http.StatusNotFound, time.Millisecond)

			Convey("Then the counters should be labeled by route pattern", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("/bookmarks/{id}", "GET", "200")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("unmatched", "GET", "404")), ShouldEqual, 1)
			})
		})

		Convey("When store operations are observed", func() {
			manager.ObserveOperation("create", ResultOK)
			manager.ObserveOperation("get", ResultNotFound)
			manager.ObserveOperation("get", ResultNotFound)

			Convey("Then each outcome should be counted", func() {
				So(testutil.ToFloat64(manager.operations.WithLabelValues("create", ResultOK)), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.operations.WithLabelValues("get", ResultNotFound)), ShouldEqual, 2)
			})
		})
	})
}

func TestManagerStoreSize(t *testing.T) {
	Convey("Given a manager wired to a store size", t, func() {
		size := 3
		manager := NewManager(WithStoreSize(func() int { return size }))

		Convey("When the registry is gathered", func() {
			size = 5
			families, err := manager.Registry().Gather()

			Convey("Then the gauge should reflect the current size", func() {
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() == "bookmarks_store_size" {
						found = true
						So(f.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 5)
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestManagerHandler(t *testing.T) {
	Convey("Given a manager with one observation", t, func() {
		manager := NewManager()
		manager.ObserveOperation("list", ResultOK)

		Convey("When the handler is scraped", func() {
			rec := httptest.NewRecorder()
			manager.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then it should expose the operation counter", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.Contains(rec.Body.String(), "bookmarks_bookmark_operations_total"), ShouldBeTrue)
			})
		})
	})
}

package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	pagesFetchedTotal       *prometheus.CounterVec
	listingsTruncatedTotal  *prometheus.CounterVec
	recordsPersistedTotal   *prometheus.CounterVec
	recordsSkippedTotal     *prometheus.CounterVec
	courseSyncSeconds       prometheus.Histogram
	lastRunSuccessTimestamp prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by sync runs.
func RegisterMetrics() {
	registerOnce.Do(func() {
		pagesFetchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classroom_pages_fetched_total",
			Help: "Total number of listing pages fetched from the classroom API.",
		}, []string{"resource"})

		listingsTruncatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classroom_listings_truncated_total",
			Help: "Total number of listings cut short by a failed page fetch.",
		}, []string{"resource"})

		recordsPersistedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classroom_records_persisted_total",
			Help: "Total number of records upserted into the local store.",
		}, []string{"kind"})

		recordsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classroom_records_skipped_total",
			Help: "Total number of fetched records rejected by validation.",
		}, []string{"resource"})

		courseSyncSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "classroom_course_sync_seconds",
			Help:    "Time spent extracting and committing a single course.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		})

		lastRunSuccessTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "classroom_last_run_success_timestamp_seconds",
			Help: "Unix time of the last run that completed without a fatal error.",
		})

		prometheus.MustRegister(
			pagesFetchedTotal,
			listingsTruncatedTotal,
			recordsPersistedTotal,
			recordsSkippedTotal,
			courseSyncSeconds,
			lastRunSuccessTimestamp,
		)
	})
}

// PagesFetched exposes the counter of fetched listing pages.
func PagesFetched() *prometheus.CounterVec {
	RegisterMetrics()
	return pagesFetchedTotal
}

// ListingsTruncated exposes the counter of truncated listings.
func ListingsTruncated() *prometheus.CounterVec {
	RegisterMetrics()
	return listingsTruncatedTotal
}

// RecordsPersisted exposes the counter of upserted records.
func RecordsPersisted() *prometheus.CounterVec {
	RegisterMetrics()
	return recordsPersistedTotal
}

// RecordsSkipped exposes the counter of records rejected at the fetch boundary.
func RecordsSkipped() *prometheus.CounterVec {
	RegisterMetrics()
	return recordsSkippedTotal
}

// CourseSyncDuration exposes the per-course duration histogram.
func CourseSyncDuration() prometheus.Histogram {
	RegisterMetrics()
	return courseSyncSeconds
}

// LastRunSuccess exposes the gauge set when a run completes.
func LastRunSuccess() prometheus.Gauge {
	RegisterMetrics()
	return lastRunSuccessTimestamp
}

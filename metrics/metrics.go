// Package metrics provides Prometheus metrics for the rankings API.
// It tracks HTTP request performance plus extraction outcomes: rows
// accepted and skipped per source, table sizes, and the last refresh time.
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	ExtractionRowsAccepted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_rows_accepted_total",
			Help: "Rows accepted into a ranking table, by source",
		},
		[]string{"source"},
	)

	ExtractionRowsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_rows_skipped_total",
			Help: "Rows skipped during extraction, by source and reason",
		},
		[]string{"source", "reason"},
	)

	RankingTableSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ranking_table_size",
			Help: "Number of entries in the current ranking table, by source",
		},
		[]string{"source"},
	)

	LastRefreshTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ranking_last_refresh_timestamp_seconds",
			Help: "Unix timestamp of the last successful extraction run",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(ExtractionRowsAccepted)
	prometheus.MustRegister(ExtractionRowsSkipped)
	prometheus.MustRegister(RankingTableSize)
	prometheus.MustRegister(LastRefreshTimestamp)
}

// ObserveExtraction records the outcome of one source extraction.
func ObserveExtraction(source string, accepted, malformed, excluded, emptyTitle, tableSize int) {
	ExtractionRowsAccepted.WithLabelValues(source).Add(float64(accepted))
	ExtractionRowsSkipped.WithLabelValues(source, "malformed").Add(float64(malformed))
	ExtractionRowsSkipped.WithLabelValues(source, "excluded").Add(float64(excluded))
	ExtractionRowsSkipped.WithLabelValues(source, "empty_title").Add(float64(emptyTitle))
	RankingTableSize.WithLabelValues(source).Set(float64(tableSize))
}

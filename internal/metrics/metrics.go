package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "innsikt_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "innsikt_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Report computation metrics
	reportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "innsikt_report_duration_seconds",
			Help:    "Report computation duration in seconds, including the record fetch",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"report"},
	)

	reportRecords = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "innsikt_report_records",
			Help:    "Number of records aggregated per report",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"report"},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "innsikt_cache_lookups_total",
			Help: "Report cache lookups by result",
		},
		[]string{"report", "result"},
	)

	recordsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "innsikt_records_skipped_total",
			Help: "Stored feedback documents skipped because they could not be decoded",
		},
		[]string{"reason"},
	)

	feedbackReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "innsikt_feedback_received_total",
			Help: "Feedback submissions accepted",
		},
		[]string{"survey_type"},
	)

	wsClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "innsikt_ws_clients",
			Help: "Connected dashboard websocket clients",
		},
	)
)

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordReport records a computed (uncached) report
func RecordReport(report string, records int, d time.Duration) {
	reportDuration.WithLabelValues(report).Observe(d.Seconds())
	reportRecords.WithLabelValues(report).Observe(float64(records))
}

// RecordCacheHit records a report served from cache
func RecordCacheHit(report string) {
	cacheLookupsTotal.WithLabelValues(report, "hit").Inc()
}

// RecordCacheMiss records a report that had to be computed
func RecordCacheMiss(report string) {
	cacheLookupsTotal.WithLabelValues(report, "miss").Inc()
}

// RecordSkippedRecord records a stored document that was dropped on read
func RecordSkippedRecord(reason string) {
	recordsSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordFeedbackReceived records an accepted submission
func RecordFeedbackReceived(surveyType string) {
	feedbackReceivedTotal.WithLabelValues(surveyType).Inc()
}

// WSClientConnected increments the connected client gauge
func WSClientConnected() { wsClients.Inc() }

// WSClientDisconnected decrements the connected client gauge
func WSClientDisconnected() { wsClients.Dec() }

// Handler returns the Prometheus scrape handler
func Handler() http.Handler {
	return promhttp.Handler()
}

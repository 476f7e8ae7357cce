package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	analysesTotal       *prometheus.CounterVec
	analysisDuration    prometheus.Histogram
	poolSize            prometheus.Histogram
	matchedTransfers    prometheus.Histogram
	droppedTransactions prometheus.Counter
	integrityScore      prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	rateLimitedTotal    prometheus.Counter
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analyses_total",
				Help: "Total number of analysis runs by outcome",
			},
			[]string{"status"},
		),
		analysisDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "analysis_duration_milliseconds",
				Help:    "Analysis run duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		poolSize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "analysis_pool_size",
				Help:    "Transactions admitted to the pool per run",
				Buckets: prometheus.ExponentialBuckets(10, 2, 12),
			},
		),
		matchedTransfers: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "analysis_matched_transfers",
				Help:    "Inter-account transfer pairs matched per run",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		droppedTransactions: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "analysis_dropped_transactions_total",
				Help: "Total transactions dropped during statement sanitation",
			},
		),
		integrityScore: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "analysis_integrity_score",
				Help: "Integrity score of the most recent analysis run",
			},
		),
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests by handler and status",
			},
			[]string{"handler", "status"},
		),
		rateLimitedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_limited_requests_total",
				Help: "Total requests rejected by the rate limiter",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "analysis.completed":
		if status := tags["status"]; status != "" {
			m.analysesTotal.WithLabelValues(status).Inc()
		}
	case "analysis.dropped_transactions":
		m.droppedTransactions.Inc()
	case "http.request":
		m.httpRequestsTotal.WithLabelValues(tags["handler"], tags["status"]).Inc()
	case "http.rate_limited":
		m.rateLimitedTotal.Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "analysis.duration":
		m.analysisDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "analysis.pool_size":
		m.poolSize.Observe(value)
	case "analysis.matched_transfers":
		m.matchedTransfers.Observe(value)
	case "analysis.integrity_score":
		m.integrityScore.Set(value)
	}
}

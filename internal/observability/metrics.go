package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// weather probability service.
type Metrics struct {
	// Upstream NASA POWER client metrics.
	UpstreamRequests        *prometheus.CounterVec // labels: outcome={success,timeout,error,malformed}
	UpstreamRequestDuration prometheus.Histogram
	RateLimitWaitDuration   prometheus.Histogram

	// Analysis metrics.
	Analyses         *prometheus.CounterVec // labels: outcome={success,no_data,upstream_error}
	AnalysisDuration prometheus.Histogram
	CohortSize       prometheus.Histogram

	// Report publishing metrics.
	ReportsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	PublishEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather",
			Name:      "upstream_requests_total",
			Help:      "NASA POWER API requests by outcome.",
		}, []string{"outcome"}),
		UpstreamRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather",
			Name:      "upstream_request_duration_seconds",
			Help:      "NASA POWER API request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RateLimitWaitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather",
			Name:      "rate_limit_wait_duration_seconds",
			Help:      "Time spent waiting on the upstream rate limiter.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}),
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather",
			Name:      "analyses_total",
			Help:      "Weather probability analyses by outcome.",
		}, []string{"outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete fetch-and-analyze call.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		CohortSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather",
			Name:      "cohort_size",
			Help:      "Number of historical records matching the analyzed calendar day.",
			Buckets:   []float64{1, 5, 10, 15, 20, 25, 30, 40},
		}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather",
			Name:      "reports_published_total",
			Help:      "Analysis reports published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather",
			Name:      "publish_errors_total",
			Help:      "Failed attempts to publish an analysis report.",
		}),
		PublishEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather",
			Name:      "publish_enabled",
			Help:      "1 when Kafka report publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamRequestDuration,
		m.RateLimitWaitDuration,
		m.Analyses,
		m.AnalysisDuration,
		m.CohortSize,
		m.ReportsPublished,
		m.PublishErrors,
		m.PublishEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		UpstreamRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather", Name: "upstream_requests_total"}, []string{"outcome"}),
		UpstreamRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather", Name: "upstream_request_duration_seconds"}),
		RateLimitWaitDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather", Name: "rate_limit_wait_duration_seconds"}),
		Analyses:                prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather", Name: "analyses_total"}, []string{"outcome"}),
		AnalysisDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather", Name: "analysis_duration_seconds"}),
		CohortSize:              prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather", Name: "cohort_size"}),
		ReportsPublished:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather", Name: "reports_published_total"}),
		PublishErrors:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather", Name: "publish_errors_total"}),
		PublishEnabled:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather", Name: "publish_enabled"}),
	}
}

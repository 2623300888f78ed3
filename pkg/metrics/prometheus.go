package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fundsAnalyzed  *prometheus.CounterVec
	fundsSkipped   *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
	lastNav        *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fundsAnalyzed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundpulse_funds_analyzed_total",
				Help: "Total number of funds analyzed",
			},
			[]string{"mode"},
		),
		fundsSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundpulse_funds_skipped_total",
				Help: "Total number of funds skipped during analysis",
			},
			[]string{"reason"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundpulse_provider_errors_total",
				Help: "Total number of upstream provider errors",
			},
			[]string{"kind"},
		),
		lastNav: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fundpulse_last_nav",
				Help: "Last observed NAV for a scheme",
			},
			[]string{"scheme_code"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFundAnalyzed records a completed per-fund analysis.
func (r *Recorder) RecordFundAnalyzed(mode string) {
	r.fundsAnalyzed.WithLabelValues(mode).Inc()
}

// RecordFundSkipped records a fund excluded from a run.
func (r *Recorder) RecordFundSkipped(reason string) {
	r.fundsSkipped.WithLabelValues(reason).Inc()
}

// RecordProviderError records an upstream failure.
func (r *Recorder) RecordProviderError(kind string) {
	r.providerErrors.WithLabelValues(kind).Inc()
}

// RecordLastNav records the latest NAV for a scheme.
func (r *Recorder) RecordLastNav(schemeCode string, nav float64) {
	r.lastNav.WithLabelValues(schemeCode).Set(nav)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

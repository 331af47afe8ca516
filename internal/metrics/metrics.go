// Package metrics holds the Prometheus collectors for the directory API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Geocode results.
const (
	GeocodeHit   = "hit"
	GeocodeMiss  = "miss"
	GeocodeError = "error"
)

// Metrics is safe to use as a nil pointer; every method becomes a no-op.
type Metrics struct {
	searchRequests *prometheus.CounterVec
	searchDuration prometheus.Histogram
	geocodeResults *prometheus.CounterVec
	rateLimited    prometheus.Counter
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contractor_directory",
			Name:      "search_requests_total",
			Help:      "Contractor search requests by outcome.",
		}, []string{"outcome"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "contractor_directory",
			Name:      "search_duration_seconds",
			Help:      "Time spent serving a contractor search.",
			Buckets:   prometheus.DefBuckets,
		}),
		geocodeResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contractor_directory",
			Name:      "geocode_results_total",
			Help:      "Geocoding attempts by result.",
		}, []string{"result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contractor_directory",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
	reg.MustRegister(m.searchRequests, m.searchDuration, m.geocodeResults, m.rateLimited)
	return m
}

// ObserveSearch counts a finished search by outcome and records its duration.
func (m *Metrics) ObserveSearch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.searchRequests.WithLabelValues(outcome).Inc()
	m.searchDuration.Observe(elapsed.Seconds())
}

// GeocodeResult counts one geocoding attempt by result.
func (m *Metrics) GeocodeResult(result string) {
	if m == nil {
		return
	}
	m.geocodeResults.WithLabelValues(result).Inc()
}

// RateLimited counts a request rejected by the rate limiter.
func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

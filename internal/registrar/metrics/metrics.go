package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registrar module. Tracks claim and
// release counts, failures by error code, operation durations, and the live
// token supply.
type Metrics struct {
	ClaimsTotal     prometheus.Counter
	ReleasesTotal   prometheus.Counter
	FailuresTotal   *prometheus.CounterVec
	ClaimDuration   prometheus.Histogram
	ReleaseDuration prometheus.Histogram
	LiveTokens      prometheus.Gauge
}

// New creates a Metrics instance with all registrar metrics registered.
func New() *Metrics {
	return &Metrics{
		ClaimsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "namevault_claims_total",
			Help: "Total number of successful name claims",
		}),
		ReleasesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "namevault_releases_total",
			Help: "Total number of successful name releases",
		}),
		FailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "namevault_operation_failures_total",
			Help: "Rejected registrar operations by operation and error code",
		}, []string{"operation", "code"}),
		ClaimDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "namevault_claim_duration_seconds",
			Help:    "Duration of claim operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ReleaseDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "namevault_release_duration_seconds",
			Help:    "Duration of release operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		LiveTokens: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "namevault_live_tokens",
			Help: "Number of currently live ownership tokens",
		}),
	}
}

// ObserveClaim records the duration of a claim operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveClaim(start time.Time) {
	m.ClaimDuration.Observe(time.Since(start).Seconds())
}

// ObserveRelease records the duration of a release operation.
func (m *Metrics) ObserveRelease(start time.Time) {
	m.ReleaseDuration.Observe(time.Since(start).Seconds())
}

// RecordFailure counts a rejected operation by error code.
func (m *Metrics) RecordFailure(operation, code string) {
	m.FailuresTotal.WithLabelValues(operation, code).Inc()
}

// SetLiveTokens updates the live token supply gauge.
func (m *Metrics) SetLiveTokens(n int64) {
	m.LiveTokens.Set(float64(n))
}

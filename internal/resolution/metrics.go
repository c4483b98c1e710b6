package resolution

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-landing/pkg/interfaces"
)

// OutcomeOK labels a successful resolution.
const OutcomeOK = "ok"

// NoOpMetrics drops every observation.
func NoOpMetrics() interfaces.ResolutionMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveResolution(string, string)         {}
func (noopMetrics) ObserveFetch(string, bool, time.Duration) {}

// PrometheusMetrics exports resolution counters and fetch latency.
type PrometheusMetrics struct {
	resolutions   *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

var _ interfaces.ResolutionMetrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the collectors with reg. A nil reg uses the
// default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "landing_hero_resolutions_total",
				Help: "Hero resolutions by resolved locale and outcome",
			},
			[]string{"locale", "outcome"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "landing_content_fetch_duration_seconds",
				Help:    "Latency of content fetches by variant and result",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"variant", "result"},
		),
	}
}

// ObserveResolution implements interfaces.ResolutionMetrics.
func (m *PrometheusMetrics) ObserveResolution(locale, outcome string) {
	if locale == "" {
		locale = "unresolved"
	}
	m.resolutions.WithLabelValues(locale, outcome).Inc()
}

// ObserveFetch implements interfaces.ResolutionMetrics.
func (m *PrometheusMetrics) ObserveFetch(variant string, found bool, duration time.Duration) {
	result := "found"
	if !found {
		result = "absent"
	}
	m.fetchDuration.WithLabelValues(variant, result).Observe(duration.Seconds())
}

// Package metrics holds the Prometheus instrumentation for Verdant.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Resolver observability: every lookup lands in exactly one tier,
	// so rate(live)/rate(total) is the data-quality signal.
	ResolutionsTotal *prometheus.CounterVec // labels: kind=price|esg, tier=live|curated|generated
	ProviderErrors   *prometheus.CounterVec // labels: provider

	RefreshDur    prometheus.Histogram
	SnapshotSaves prometheus.Counter
	SnapshotErrs  prometheus.Counter

	registry *prometheus.Registry
}

// New registers and returns all Prometheus metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "verdant_resolutions_total",
			Help: "Market data resolutions by kind and source tier",
		}, []string{"kind", "tier"}),
		ProviderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "verdant_provider_errors_total",
			Help: "Upstream provider failures (network, non-2xx, malformed payload)",
		}, []string{"provider"}),
		RefreshDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "verdant_fund_refresh_duration_seconds",
			Help:    "Wall time of a full fund price refresh",
			Buckets: prometheus.DefBuckets,
		}),
		SnapshotSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "verdant_snapshot_saves_total",
			Help: "Portfolio snapshot writes to the local database",
		}),
		SnapshotErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "verdant_snapshot_errors_total",
			Help: "Failed portfolio snapshot writes",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ResolutionsTotal,
		m.ProviderErrors,
		m.RefreshDur,
		m.SnapshotSaves,
		m.SnapshotErrs,
	)

	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

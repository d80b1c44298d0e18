// Package metrics exposes Prometheus collectors for the observation service.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch and lookup outcomes used as label values.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
	ResultHit      = "hit"
	ResultMiss     = "miss"
	ResultEmpty    = "empty"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	UpstreamFetches  *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
	CacheLookups     *prometheus.CounterVec
	Projections      *prometheus.CounterVec
	registry         *prometheus.Registry
}

// New creates the collectors and registers them with registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: registry,
		UpstreamFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_fetch_total",
			Help: "Total number of observation fetches from the upstream provider by result",
		}, []string{"result"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "upstream_fetch_duration_seconds",
			Help:    "Duration of observation fetches from the upstream provider in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "observation_cache_lookups_total",
			Help: "Total number of observation store lookups by result",
		}, []string{"result"}),
		Projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "observation_projections_total",
			Help: "Total number of field projections by result",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{m.UpstreamFetches, m.UpstreamDuration, m.CacheLookups, m.Projections} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register observation metrics: %w", err)
		}
	}
	return m, nil
}

// ObserveFetch records one upstream fetch.
func (m *Metrics) ObserveFetch(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamFetches.WithLabelValues(result).Inc()
	m.UpstreamDuration.Observe(d.Seconds())
}

// ObserveCacheLookup records a store hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveProjection records whether a projection produced any rows.
func (m *Metrics) ObserveProjection(rows int) {
	if m == nil {
		return
	}
	result := ResultOK
	if rows == 0 {
		result = ResultEmpty
	}
	m.Projections.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package metrics exposes dendrogram build metrics in Prometheus format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records build outcomes and node counts on a private registry.
// It satisfies dendro.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	BuildsTotal   *prometheus.CounterVec
	NodesTotal    *prometheus.CounterVec
	BuildDuration prometheus.Histogram
}

// New creates a metrics manager with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		BuildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dendro_builds_total",
			Help: "Dendrogram builds by outcome",
		}, []string{"outcome"}),

		NodesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dendro_nodes_total",
			Help: "Reconstructed nodes by type",
		}, []string{"type"}),

		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dendro_build_duration_seconds",
			Help:    "Dendrogram build duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	registry.MustRegister(
		m.BuildsTotal,
		m.NodesTotal,
		m.BuildDuration,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveBuild records one build attempt.
func (m *Metrics) ObserveBuild(outcome string, elapsed time.Duration) {
	m.BuildsTotal.WithLabelValues(outcome).Inc()
	m.BuildDuration.Observe(elapsed.Seconds())
}

// AddNodes records n reconstructed nodes of the given type.
func (m *Metrics) AddNodes(nodeType string, n int) {
	m.NodesTotal.WithLabelValues(nodeType).Add(float64(n))
}

// WriteTextfile writes all metrics to path in the node-exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

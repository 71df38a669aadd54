// Package metrics exposes frame-loop instrumentation through a dedicated
// prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SpawnsTotal    prometheus.Counter
	reticleVisible prometheus.Gauge
	pollDuration   prometheus.Histogram
	registry       *prometheus.Registry
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SpawnsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "xrplace",
			Name:      "spawns_total",
			Help:      "Number of objects spawned on detected surfaces.",
		}),
		reticleVisible: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "xrplace",
			Name:      "reticle_visible",
			Help:      "1 while the reticle indicates a detected surface.",
		}),
		pollDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "xrplace",
			Name:      "hit_poll_duration_seconds",
			Help:      "Duration of the per-frame hit-test poll.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
}

// PollTimer times one hit-test poll; call ObserveDuration when done.
func (m *Metrics) PollTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.pollDuration)
}

func (m *Metrics) SetReticleVisible(visible bool) {
	if visible {
		m.reticleVisible.Set(1)
	} else {
		m.reticleVisible.Set(0)
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package observability

import (
	"fmt"
	"net/http"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "plume"

// Metrics records run outcomes.
// Safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	last     *prometheus.GaugeVec
}

// NewMetrics creates Metrics on a private registry.
// When withRuntime is set, Go runtime and process collectors are registered too.
func NewMetrics(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "runs_total",
				Help:      "Total number of run outcomes, by status and error kind.",
			},
			[]string{"status", "kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall-clock duration of runs.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
			},
			[]string{"status"},
		),
		last: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "run_last_duration_seconds",
				Help:      "Duration of the most recent attempt of each run label.",
			},
			[]string{"run"},
		),
	}
	m.registry.MustRegister(m.runs, m.duration, m.last)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// ObserveRun implements ports.RunRecorder.
func (m *Metrics) ObserveRun(o domain.RunOutcome) {
	kind := string(o.Kind)
	if kind == "" {
		kind = "none"
	}
	m.runs.WithLabelValues(string(o.Status), kind).Inc()
	if o.Status == domain.StatusSkipped {
		return
	}
	m.duration.WithLabelValues(string(o.Status)).Observe(o.Duration.Seconds())
	m.last.WithLabelValues(o.Label).Set(o.Duration.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current metrics to path for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

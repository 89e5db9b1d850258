// Package metrics records restore measurements with Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/restore/internal/core/domain"
)

// Metrics implements ports.Metrics.
type Metrics struct {
	RequestsScheduled *prometheus.CounterVec
	RequestsPerRun    prometheus.Histogram
	QueueDepthGauge   prometheus.Gauge
	Runs              *prometheus.CounterVec
	RunDuration       prometheus.Histogram
	Projects          *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates Metrics registered on a new registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	m.gatherer = reg
	return m
}

// NewWithRegistry creates Metrics registered on registry.
func NewWithRegistry(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		RequestsScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restore_requests_scheduled_total",
				Help: "Total number of restore requests accepted by the worker",
			},
			[]string{"source"},
		),
		RequestsPerRun: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "restore_requests_per_run",
				Help:    "Number of requests served by a single restore run",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 150},
			},
		),
		QueueDepthGauge: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "restore_queue_depth",
				Help: "Number of pending restore requests",
			},
		),
		Runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restore_runs_total",
				Help: "Total number of restore runs by status",
			},
			[]string{"status"},
		),
		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "restore_run_duration_seconds",
				Help:    "Restore run duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		Projects: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restore_projects_total",
				Help: "Total number of projects by restore outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RequestScheduled counts a request accepted by the worker.
func (m *Metrics) RequestScheduled(source domain.RestoreSource) {
	m.RequestsScheduled.WithLabelValues(source.String()).Inc()
}

// RequestsCoalesced records how many requests a single run served.
func (m *Metrics) RequestsCoalesced(count int) {
	m.RequestsPerRun.Observe(float64(count))
}

// QueueDepth reports the number of pending requests.
func (m *Metrics) QueueDepth(depth int) {
	m.QueueDepthGauge.Set(float64(depth))
}

// RestoreCompleted records the outcome and duration of a run.
func (m *Metrics) RestoreCompleted(status domain.RestoreStatus, duration time.Duration) {
	m.Runs.WithLabelValues(status.String()).Inc()
	m.RunDuration.Observe(duration.Seconds())
}

// ProjectsRestored counts restored and up-to-date projects.
func (m *Metrics) ProjectsRestored(restored, upToDate int) {
	m.Projects.WithLabelValues("restored").Add(float64(restored))
	m.Projects.WithLabelValues("uptodate").Add(float64(upToDate))
}

// Handler returns the HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	if m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

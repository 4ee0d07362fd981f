package cloudsync

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the sync engine.
//
// Metrics:
//   - replay_sync_saves_total{kind,outcome} - explicit saves and comment auto-saves
//   - replay_sync_save_duration_seconds{kind} - time until the write finished
//   - replay_sync_loads_total{outcome} - loads by outcome
type Metrics struct {
	SavesTotal   *prometheus.CounterVec
	SaveDuration *prometheus.HistogramVec
	LoadsTotal   *prometheus.CounterVec
}

// NewMetrics registers the sync metrics once per process
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			SavesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "replay_sync_saves_total",
					Help: "Total number of project writes by kind and outcome",
				},
				[]string{"kind", "outcome"}, // kind: "explicit" or "autosave"
			),
			SaveDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "replay_sync_save_duration_seconds",
					Help:    "Duration of project writes in seconds",
					Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30},
				},
				[]string{"kind"},
			),
			LoadsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "replay_sync_loads_total",
					Help: "Total number of project loads by outcome",
				},
				[]string{"outcome"}, // "ok", "not_found", "timeout", "error"
			),
		}
	})
	return globalMetrics
}

func (m *Metrics) recordSave(kind, outcome string, started time.Time) {
	m.SavesTotal.WithLabelValues(kind, outcome).Inc()
	m.SaveDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

func (m *Metrics) recordLoad(outcome string) {
	m.LoadsTotal.WithLabelValues(outcome).Inc()
}

package documents

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/simplereplay/replay/pkg/errors"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the document service.
//
// Metrics:
//   - replay_documents_operations_total{operation,outcome}
type Metrics struct {
	OperationsTotal *prometheus.CounterVec
}

// NewMetrics registers the document metrics once per process
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			OperationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "replay_documents_operations_total",
					Help: "Total number of document operations by outcome",
				},
				[]string{"operation", "outcome"},
			),
		}
	})
	return globalMetrics
}

func (m *Metrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(apperrors.GetCode(err))
	}
	m.OperationsTotal.WithLabelValues(operation, outcome).Inc()
}

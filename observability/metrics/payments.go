package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type PaymentsMetrics struct {
	created   prometheus.Counter
	completed prometheus.Counter
	rejected  *prometheus.CounterVec
}

var (
	paymentsOnce     sync.Once
	paymentsRegistry *PaymentsMetrics
)

func Payments() *PaymentsMetrics {
	paymentsOnce.Do(func() {
		paymentsRegistry = &PaymentsMetrics{
			created: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "payments_created_total",
				Help: "Count of payments appended to the ledger.",
			}),
			completed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "payments_completed_total",
				Help: "Count of payment completion calls, including idempotent repeats.",
			}),
			rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "payments_rejected_total",
				Help: "Count of rejected payment attempts by reason.",
			}, []string{"reason"}),
		}
		prometheus.MustRegister(
			paymentsRegistry.created,
			paymentsRegistry.completed,
			paymentsRegistry.rejected,
		)
	})
	return paymentsRegistry
}

func (m *PaymentsMetrics) Created() {
	if m == nil {
		return
	}
	m.created.Inc()
}

func (m *PaymentsMetrics) Completed() {
	if m == nil {
		return
	}
	m.completed.Inc()
}

func (m *PaymentsMetrics) Rejected(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.rejected.WithLabelValues(reason).Inc()
}

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type SupplyMetrics struct {
	productsRegistered     prometheus.Counter
	participantsRegistered prometheus.Counter
	productsTransferred    prometheus.Counter
}

var (
	supplyOnce     sync.Once
	supplyRegistry *SupplyMetrics
)

func Supply() *SupplyMetrics {
	supplyOnce.Do(func() {
		supplyRegistry = &SupplyMetrics{
			productsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "supply_products_registered_total",
				Help: "Count of products added to the local ledger.",
			}),
			participantsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "supply_participants_registered_total",
				Help: "Count of participants added to the local ledger.",
			}),
			productsTransferred: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "supply_products_transferred_total",
				Help: "Count of successful custody transfers.",
			}),
		}
		prometheus.MustRegister(
			supplyRegistry.productsRegistered,
			supplyRegistry.participantsRegistered,
			supplyRegistry.productsTransferred,
		)
	})
	return supplyRegistry
}

func (m *SupplyMetrics) ProductRegistered() {
	if m == nil {
		return
	}
	m.productsRegistered.Inc()
}

func (m *SupplyMetrics) ParticipantRegistered() {
	if m == nil {
		return
	}
	m.participantsRegistered.Inc()
}

func (m *SupplyMetrics) ProductTransferred() {
	if m == nil {
		return
	}
	m.productsTransferred.Inc()
}

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type WalletMetrics struct {
	connects      prometheus.Counter
	disconnects   prometheus.Counter
	chainSwitches prometheus.Counter
	connected     prometheus.Gauge
}

var (
	walletOnce     sync.Once
	walletRegistry *WalletMetrics
)

func Wallet() *WalletMetrics {
	walletOnce.Do(func() {
		walletRegistry = &WalletMetrics{
			connects: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "wallet_connects_total",
				Help: "Count of successful wallet connections.",
			}),
			disconnects: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "wallet_disconnects_total",
				Help: "Count of transitions to the disconnected state.",
			}),
			chainSwitches: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "wallet_chain_switches_total",
				Help: "Count of provider-driven chain switch attempts.",
			}),
			connected: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "wallet_connected",
				Help: "1 while the bridge holds a live session on the expected chain.",
			}),
		}
		prometheus.MustRegister(
			walletRegistry.connects,
			walletRegistry.disconnects,
			walletRegistry.chainSwitches,
			walletRegistry.connected,
		)
	})
	return walletRegistry
}

func (m *WalletMetrics) Connected() {
	if m == nil {
		return
	}
	m.connects.Inc()
	m.connected.Set(1)
}

func (m *WalletMetrics) Disconnected() {
	if m == nil {
		return
	}
	m.disconnects.Inc()
	m.connected.Set(0)
}

func (m *WalletMetrics) ChainSwitchAttempted() {
	if m == nil {
		return
	}
	m.chainSwitches.Inc()
}

package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the hub's operational counters.
type Metrics struct {
	Connections prometheus.Gauge
	Sessions    prometheus.Gauge
	Messages    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Connections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "shoppos_relay_open_connections",
			Help: "Currently open relay websocket connections.",
		}),
		Sessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "shoppos_relay_active_sessions",
			Help: "Session rooms with at least one connected party.",
		}),
		Messages: factory.NewCounter(prometheus.CounterOpts{
			Name: "shoppos_relay_relayed_messages_total",
			Help: "Frames fanned out to room members.",
		}),
	}
}

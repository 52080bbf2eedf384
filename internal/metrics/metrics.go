package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the screening service
type Metrics struct {
	ScreeningChecks *prometheus.CounterVec
	AddressesLoaded prometheus.Gauge
}

// New creates and registers all metrics against the given registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ScreeningChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sanctionsfeed_screening_checks_total",
			Help: "Total number of address screening checks by outcome",
		}, []string{"result"}),
		AddressesLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sanctionsfeed_addresses_loaded",
			Help: "Number of sanctioned addresses currently loaded for screening",
		}),
	}
}

// RecordCheck increments the screening counter for an outcome
func (m *Metrics) RecordCheck(sanctioned bool) {
	result := "clear"
	if sanctioned {
		result = "sanctioned"
	}
	m.ScreeningChecks.WithLabelValues(result).Inc()
}

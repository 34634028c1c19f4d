package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Kerhoff/ListboT/internal/models"
)

// Metrics holds the Prometheus collectors updated by the services. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	lists      *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "listbot",
			Name:      "operations_total",
			Help:      "List and membership operations by outcome.",
		}, []string{"operation", "outcome"}),
		lists: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "listbot",
			Name:      "lists",
			Help:      "Number of stored lists by type.",
		}, []string{"type"}),
	}
	reg.MustRegister(m.operations, m.lists)
	return m
}

func (m *Metrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) setListCounts(counts map[models.ListType]int64) {
	if m == nil {
		return
	}
	for listType, count := range counts {
		m.lists.WithLabelValues(string(listType)).Set(float64(count))
	}
}

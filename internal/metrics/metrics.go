// Package metrics exposes Prometheus counters for catalog and recipe activity.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the counters the session updates.
type Metrics struct {
	MaterialsAdded    prometheus.Counter
	MaterialsRejected prometheus.Counter
	MaterialsRemoved  prometheus.Counter
	LinesCascaded     prometheus.Counter
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MaterialsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "costeo",
			Name:      "materials_added_total",
			Help:      "Raw materials added to the catalog.",
		}),
		MaterialsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "costeo",
			Name:      "materials_rejected_total",
			Help:      "Add-material calls rejected by validation.",
		}),
		MaterialsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "costeo",
			Name:      "materials_removed_total",
			Help:      "Raw materials removed from the catalog.",
		}),
		LinesCascaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "costeo",
			Name:      "ingredient_lines_cascaded_total",
			Help:      "Ingredient lines removed because their material was removed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.MaterialsAdded, m.MaterialsRejected, m.MaterialsRemoved, m.LinesCascaded)
	}
	return m
}

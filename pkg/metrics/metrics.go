package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters exported on /metrics.
type Metrics struct {
	EventsPublished *prometheus.CounterVec
	EventsFailed    *prometheus.CounterVec
	OrphansPruned   *prometheus.CounterVec
}

// New registers the counters on reg. Pass prometheus.NewRegistry() in tests
// to keep them off the default registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatd_reactions",
			Name:      "events_published_total",
			Help:      "Bus events delivered to the publisher, by event name.",
		}, []string{"event"}),
		EventsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatd_reactions",
			Name:      "events_failed_total",
			Help:      "Bus events the publisher rejected, by event name.",
		}, []string{"event"}),
		OrphansPruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatd_reactions",
			Name:      "orphans_pruned_total",
			Help:      "Rows removed or detached by the cleaner, by table.",
		}, []string{"table"}),
	}
	reg.MustRegister(m.EventsPublished, m.EventsFailed, m.OrphansPruned)
	return m
}

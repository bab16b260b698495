// Package metrics exposes Prometheus counters for registrations and
// application events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shaharia-lab/regnotify/internal/eventbus"
)

const namespace = "regnotify"

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	Registrations *prometheus.CounterVec
	Events        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Users registered, by notification channel.",
		}, []string{"channel"}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Application events observed on the event bus, by type.",
		}, []string{"type"}),
	}
	reg.MustRegister(m.Registrations, m.Events)
	return m
}

// Listener returns an event bus listener that updates the counters.
func (m *Metrics) Listener(registeredEventType string) eventbus.Listener {
	return func(e eventbus.Event) {
		m.Events.WithLabelValues(e.Type).Inc()
		if e.Type == registeredEventType {
			m.Registrations.WithLabelValues(e.Payload["channel"]).Inc()
		}
	}
}

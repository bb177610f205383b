// Package metrics exposes Prometheus instrumentation for notification
// dispatch outcomes.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters updated by the dispatcher.
type Metrics struct {
	sent   *prometheus.CounterVec
	failed *prometheus.CounterVec
}

// New creates the dispatch counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devicedesk_notifications_sent_total",
			Help: "Number of notification emails delivered successfully.",
		}, []string{"type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devicedesk_notifications_failed_total",
			Help: "Number of notification emails that failed to deliver.",
		}, []string{"type"}),
	}
	reg.MustRegister(m.sent, m.failed)
	return m
}

// RecordSent increments the sent counter for a notification type.
func (m *Metrics) RecordSent(notificationType string) {
	m.sent.WithLabelValues(notificationType).Inc()
}

// RecordFailed increments the failed counter for a notification type.
func (m *Metrics) RecordFailed(notificationType string) {
	m.failed.WithLabelValues(notificationType).Inc()
}

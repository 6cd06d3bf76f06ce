// Package telemetry exposes Prometheus metrics for reminder delivery
// and the HTTP boundary.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	// Reminder delivery
	RemindersSent   prometheus.Counter
	RemindersFailed prometheus.Counter
	TestSends       *prometheus.CounterVec // result: ok|failed
	ProbeChecks     *prometheus.CounterVec // result: ok|failed
	DispatchBatch   prometheus.Histogram

	// HTTP boundary
	RequestsTotal   *prometheus.CounterVec // method, path, status
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers all collectors against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RemindersSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "vinledger_reminders_sent_total",
			Help: "Reminder emails accepted by the SMTP server.",
		}),
		RemindersFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "vinledger_reminders_failed_total",
			Help: "Reminder attempts that ended in a Failed log entry.",
		}),
		TestSends: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vinledger_test_sends_total",
			Help: "Configuration test sends by result.",
		}, []string{"result"}),
		ProbeChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vinledger_probe_checks_total",
			Help: "SMTP connectivity probes by result.",
		}, []string{"result"}),
		DispatchBatch: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "vinledger_dispatch_batch_size",
			Help:    "Recipients per bulk reminder dispatch.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vinledger_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vinledger_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Package metrics holds the Prometheus collectors for the booking service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups all collectors registered by the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AppointmentsCreated   prometheus.Counter
	AppointmentsCancelled prometheus.Counter
	CreditIssuedTotal     prometheus.Counter
	ConflictsRejected     *prometheus.CounterVec
}

// New registers and returns the service collectors on the default registry.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Number of HTTP requests processed, by method, route and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "code"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency, by method and route.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		AppointmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointments successfully created.",
			ConstLabels: constLabels,
		}),

		AppointmentsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_cancelled_total",
			Help:        "Appointments cancelled by patients or the clinic.",
			ConstLabels: constLabels,
		}),

		CreditIssuedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "cancellation_credit_issued_total",
			Help:        "Total credit amount issued for cancellations, in COP.",
			ConstLabels: constLabels,
		}),

		ConflictsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_rejected_total",
			Help:        "Booking attempts rejected by the conflict detector, by resource kind.",
			ConstLabels: constLabels,
		}, []string{"resource"}),
	}
	return m
}

// AppointmentCreated records a successful appointment creation.
func (m *Metrics) AppointmentCreated() {
	m.AppointmentsCreated.Inc()
}

// AppointmentCancelled records a cancellation and the credit it issued.
func (m *Metrics) AppointmentCancelled(creditAmount int64) {
	m.AppointmentsCancelled.Inc()
	if creditAmount > 0 {
		m.CreditIssuedTotal.Add(float64(creditAmount))
	}
}

// ConflictRejected records a booking attempt rejected by the conflict
// detector, labeled by the resource kind ("room" or "professional").
func (m *Metrics) ConflictRejected(resource string) {
	m.ConflictsRejected.WithLabelValues(resource).Inc()
}

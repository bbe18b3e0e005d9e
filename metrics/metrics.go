// Package metrics exposes Prometheus counters for bookings and documents.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	bookingsCreated  *prometheus.CounterVec
	transitions      *prometheus.CounterVec
	documents        *prometheus.CounterVec
	documentDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lr_bookings_created_total",
			Help: "Bookings created, by booking type.",
		}, []string{"type"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lr_booking_transitions_total",
			Help: "Booking status changes, by target status.",
		}, []string{"status"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lr_documents_generated_total",
			Help: "Generated PDF documents, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		documentDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lr_document_render_duration_seconds",
			Help:    "Time spent rendering PDF documents.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	reg.MustRegister(m.bookingsCreated, m.transitions, m.documents, m.documentDuration)
	return m
}

func (m *Metrics) BookingCreated(bookingType string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(bookingType).Inc()
}

func (m *Metrics) Transition(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}

// Document records one generation attempt; outcome is "uploaded", "local",
// "rendered" or "failed".
func (m *Metrics) Document(kind, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(kind, outcome).Inc()
	m.documentDuration.WithLabelValues(kind).Observe(took.Seconds())
}

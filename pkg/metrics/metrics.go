package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type bookingMetrics struct {
	reservations *prometheus.CounterVec
	payments     *prometheus.CounterVec
	retries      prometheus.Counter
	repairs      *prometheus.CounterVec
}

type httpMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var (
	bookingOnce     sync.Once
	bookingRegistry *bookingMetrics

	httpOnce     sync.Once
	httpRegistry *httpMetrics
)

// Booking returns the lazily-initialised registry for reservation and payment
// outcomes.
func Booking() *bookingMetrics {
	bookingOnce.Do(func() {
		bookingRegistry = &bookingMetrics{
			reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "rentals",
				Subsystem: "booking",
				Name:      "reservations_total",
				Help:      "Reservation operations segmented by operation and outcome.",
			}, []string{"operation", "outcome"}),
			payments: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "rentals",
				Subsystem: "booking",
				Name:      "payments_total",
				Help:      "Payments recorded segmented by method and resulting status.",
			}, []string{"method", "status"}),
			retries: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "rentals",
				Subsystem: "booking",
				Name:      "version_retries_total",
				Help:      "Reservation creates retried after losing the listing version lock.",
			}),
			repairs: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "rentals",
				Subsystem: "reconciler",
				Name:      "reservations_total",
				Help:      "Reservations examined by the reconciliation sweep segmented by result.",
			}, []string{"result"}),
		}
		prometheus.MustRegister(
			bookingRegistry.reservations,
			bookingRegistry.payments,
			bookingRegistry.retries,
			bookingRegistry.repairs,
		)
	})
	return bookingRegistry
}

// ObserveReservation records the outcome of a reservation operation such as
// create, cancel or confirm. Outcome is usually an error kind or "ok".
func (m *bookingMetrics) ObserveReservation(operation, outcome string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(operation, outcome).Inc()
}

// ObservePayment records a committed payment.
func (m *bookingMetrics) ObservePayment(method, status string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(method, status).Inc()
}

// ObserveRetry records a create retried after a version conflict.
func (m *bookingMetrics) ObserveRetry() {
	if m == nil {
		return
	}
	m.retries.Inc()
}

// ObserveRepair records one reconciliation decision.
func (m *bookingMetrics) ObserveRepair(result string) {
	if m == nil {
		return
	}
	m.repairs.WithLabelValues(result).Inc()
}

// HTTP returns the lazily-initialised registry for API request metrics.
func HTTP() *httpMetrics {
	httpOnce.Do(func() {
		httpRegistry = &httpMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "rentals",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests segmented by route pattern, method and status code.",
			}, []string{"route", "method", "status"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "rentals",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Latency distribution for HTTP handlers.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"route", "method"}),
		}
		prometheus.MustRegister(httpRegistry.requests, httpRegistry.latency)
	})
	return httpRegistry
}

// Observe records a completed HTTP request.
func (m *httpMetrics) Observe(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}

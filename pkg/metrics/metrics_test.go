package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetrics(t *testing.T) {
	m := Booking()
	assert.Same(t, m, Booking())

	before := testutil.ToFloat64(m.reservations.WithLabelValues("create", "ok"))
	m.ObserveReservation("create", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(m.reservations.WithLabelValues("create", "ok")))

	m.ObservePayment("cash", "pending")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.payments.WithLabelValues("cash", "pending")))
}

func TestHTTPMetrics(t *testing.T) {
	m := HTTP()
	m.Observe("/reservations", http.MethodPost, http.StatusCreated, 15*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("/reservations", http.MethodPost, "201")))
}

func TestNilRegistryIsSafe(t *testing.T) {
	var m *bookingMetrics
	assert.NotPanics(t, func() {
		m.ObserveReservation("create", "ok")
		m.ObserveRetry()
	})
}

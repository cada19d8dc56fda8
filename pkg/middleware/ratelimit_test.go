package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 2)
	limiter.now = func() time.Time { return now }
	handler := limiter.Middleware(okHandler())

	post := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	t.Run("Burst Then Throttled", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, post("10.0.0.1:1234"))
		assert.Equal(t, http.StatusOK, post("10.0.0.1:1235"))
		assert.Equal(t, http.StatusTooManyRequests, post("10.0.0.1:1236"))
	})

	t.Run("Other Client Unaffected", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, post("10.0.0.2:1234"))
	})

	t.Run("Refills Over Time", func(t *testing.T) {
		now = now.Add(time.Second)
		assert.Equal(t, http.StatusOK, post("10.0.0.1:1234"))
	})

	t.Run("Reads Pass Through", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			req := httptest.NewRequest(http.MethodGet, "/listings", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusOK, rr.Code)
		}
	})

	t.Run("Stale Visitors Are Evicted", func(t *testing.T) {
		now = now.Add(visitorTTL + time.Second)
		post("10.0.0.3:1234")
		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		assert.Len(t, limiter.visitors, 1)
	})
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	assert.Equal(t, "ip:192.0.2.10", clientKey(req))

	req = req.WithContext(identity.NewContext(req.Context(), identity.Identity{UserID: "user-1", Role: models.RoleRenter}))
	assert.Equal(t, "user:user-1", clientKey(req))
}

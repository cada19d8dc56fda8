package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewStructuredLogger logs one line per request and records the request in the
// HTTP metrics under its route pattern. It must run inside chi's RequestID
// middleware to pick up the request id, and outside Authenticate so rejected
// tokens are logged too.
func NewStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			caller := new(string)
			r = r.WithContext(context.WithValue(r.Context(), callerSlotKey{}, caller))

			defer func() {
				status := ww.Status()
				if status == 0 {
					// Hijacked or nothing written.
					status = http.StatusOK
				}
				latency := time.Since(start)
				route := routePattern(r)
				metrics.HTTP().Observe(route, r.Method, status, latency)

				requestAttrs := slog.Group("request",
					slog.String("id", middleware.GetReqID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("route", route),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("user_id", loggedCaller(r, *caller)),
				)
				responseAttrs := slog.Group("response",
					slog.Int("status", status),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("latency", latency.String()),
				)

				switch {
				case status >= 500:
					logger.Error("server error", requestAttrs, responseAttrs)
				case status >= 400:
					logger.Warn("request rejected", requestAttrs, responseAttrs)
				default:
					logger.Info("request completed", requestAttrs, responseAttrs)
				}
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

// routePattern returns the matched chi pattern, so metrics are not labelled
// with raw ids.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}

type callerSlotKey struct{}

// noteCaller lets Authenticate hand the verified user back to the logger,
// which only holds the request it passed down.
func noteCaller(ctx context.Context, userID string) {
	if slot, ok := ctx.Value(callerSlotKey{}).(*string); ok {
		*slot = userID
	}
}

func loggedCaller(r *http.Request, noted string) string {
	if noted != "" {
		return noted
	}
	return identity.FromContext(r.Context()).UserID
}

// Package respond writes JSON responses and booking errors.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chris/apartment-rentals/pkg/api"
	"github.com/chris/apartment-rentals/pkg/booking"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Error writes err as {"kind","message"}. Errors that are not booking errors
// are internal; their detail is logged, never returned.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var be *booking.Error
	if !errors.As(err, &be) {
		be = &booking.Error{Kind: booking.KindInternal, Message: "internal error", Err: err}
	}
	status := be.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	JSON(w, status, api.Error{Kind: string(be.Kind), Message: be.Message})
}

// Decode reads a JSON request body into v, answering 400 itself on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, r, booking.InvalidInput("invalid request body: %v", err))
		return false
	}
	return true
}

package booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/apartment-rentals/pkg/storage"
)

// Kind classifies a booking error. Every kind maps to one HTTP status.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindUnauthenticated  Kind = "unauthenticated"
	KindForbidden        Kind = "forbidden"
	KindNotFound         Kind = "not_found"
	KindUnavailable      Kind = "unavailable"
	KindConflict         Kind = "conflict"
	KindDuplicatePayment Kind = "duplicate_payment"
	KindInternal         Kind = "internal"
)

// HTTPStatus returns the status code a handler should answer with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable, KindConflict, KindDuplicatePayment:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is returned by the engine and the recorder. Message is safe to show
// to the caller; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// InvalidInput reports a user-correctable request problem.
func InvalidInput(format string, args ...any) *Error {
	return newError(KindInvalidInput, fmt.Sprintf(format, args...), nil)
}

// Forbidden reports that the caller may not perform the operation.
func Forbidden(msg string) *Error {
	return newError(KindForbidden, msg, nil)
}

// Unauthenticated reports a request with no verified caller.
func Unauthenticated() *Error {
	return newError(KindUnauthenticated, "authentication required", nil)
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

// fromStore translates a storage error into a booking error.
func fromStore(err error, what string) *Error {
	var be *Error
	if errors.As(err, &be) {
		return be
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return newError(KindNotFound, what+" not found", err)
	case errors.Is(err, storage.ErrListingUnavailable):
		return newError(KindUnavailable, "listing is not available for booking", err)
	case errors.Is(err, storage.ErrBookingConflict), errors.Is(err, storage.ErrVersionConflict):
		return newError(KindConflict, "the requested dates overlap an existing reservation", err)
	case errors.Is(err, storage.ErrDuplicatePayment):
		return newError(KindDuplicatePayment, "a payment already exists for this reservation", err)
	case errors.Is(err, storage.ErrStatusConflict):
		return newError(KindConflict, what+" was modified concurrently", err)
	case errors.Is(err, storage.ErrListingHasReservations):
		return newError(KindConflict, "listing still has active reservations", err)
	case errors.Is(err, storage.ErrAlreadyExists):
		return newError(KindConflict, what+" already exists", err)
	default:
		return newError(KindInternal, "internal error", err)
	}
}

// StoreError translates a storage error for handlers that talk to the store
// directly. what names the missing or conflicting item.
func StoreError(err error, what string) *Error {
	return fromStore(err, what)
}

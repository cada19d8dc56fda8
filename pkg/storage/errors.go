package storage

import "errors"

// ErrNotFound is returned when the requested item does not exist.
var ErrNotFound = errors.New("not found")

// ErrListingUnavailable is returned when a listing's availability flag is off.
var ErrListingUnavailable = errors.New("listing is not available")

// ErrBookingConflict is returned when a date range overlaps an active reservation.
var ErrBookingConflict = errors.New("dates overlap an existing reservation")

// ErrVersionConflict is returned when a listing's booking version moved between
// the read and the write. Callers should re-read and retry.
var ErrVersionConflict = errors.New("listing booking version changed")

// ErrDuplicatePayment is returned when a payment already exists for a reservation.
var ErrDuplicatePayment = errors.New("payment already recorded for reservation")

// ErrStatusConflict is returned when a conditional status update found the item
// in a different status than expected.
var ErrStatusConflict = errors.New("status changed concurrently")

// ErrListingHasReservations is returned when deleting a listing that still has
// active reservations.
var ErrListingHasReservations = errors.New("listing has active reservations")

// ErrAlreadyExists is returned when creating an item whose id is taken.
var ErrAlreadyExists = errors.New("already exists")

package storage

import (
	"context"

	"github.com/chris/apartment-rentals/pkg/models"
)

// ReservationReader defines the interface for reading reservations.
type ReservationReader interface {
	// GetReservation retrieves a reservation by its ID.
	GetReservation(ctx context.Context, reservationID string) (*models.Reservation, error)

	// ListReservations returns reservations matching filter, newest first.
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
}

// ReservationManager defines the interface for creating reservations and moving
// them through their lifecycle.
type ReservationManager interface {
	// CreateReservation inserts res and records its range on the listing in one
	// transaction. listingVersion is the booking version the caller checked
	// overlaps against; ErrVersionConflict means it is stale. The ranges named
	// in released are dropped from the listing in the same write.
	CreateReservation(ctx context.Context, res *models.Reservation, listingVersion int64, released []string) (*models.Reservation, error)

	// UpdateReservationStatus moves a reservation from one status to another,
	// failing with ErrStatusConflict if it is no longer in from.
	UpdateReservationStatus(ctx context.Context, reservationID string, from, to models.ReservationStatus) (*models.Reservation, error)

	// CancelReservation marks res cancelled and releases its range on the listing.
	CancelReservation(ctx context.Context, res *models.Reservation) (*models.Reservation, error)
}

// ReservationStore combines the reader and manager interfaces.
type ReservationStore interface {
	ReservationReader
	ReservationManager
}

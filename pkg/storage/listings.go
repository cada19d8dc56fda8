package storage

import (
	"context"

	"github.com/chris/apartment-rentals/pkg/models"
)

// ListingReader defines the interface for reading listings.
type ListingReader interface {
	// GetListing retrieves a listing with a strongly consistent read, including
	// its booking version and booked ranges.
	GetListing(ctx context.Context, listingID string) (*models.Listing, error)

	// ListListings returns the listings matching filter.
	ListListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
}

// ListingManager defines the interface for managing listings.
type ListingManager interface {
	CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error)

	// UpdateListing writes the mutable fields of a listing. Booking state is never touched.
	UpdateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error)

	// DeleteListing removes a listing that has no active reservations.
	DeleteListing(ctx context.Context, listingID string) error
}

// ListingStore combines the reader and manager interfaces.
type ListingStore interface {
	ListingReader
	ListingManager
}

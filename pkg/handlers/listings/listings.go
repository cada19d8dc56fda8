package listings

import (
	"net/http"
	"strings"
	"time"

	"github.com/chris/apartment-rentals/pkg/api"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/handlers/respond"
	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/mapping"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
	"github.com/google/uuid"
)

// ListingsHandler holds the dependencies for listing-related handlers.
type ListingsHandler struct {
	Store storage.ListingStore
}

// NewListingsHandler creates a new ListingsHandler.
func NewListingsHandler(store storage.ListingStore) *ListingsHandler {
	return &ListingsHandler{Store: store}
}

// ListListings handles the public listing search.
func (h *ListingsHandler) ListListings(w http.ResponseWriter, r *http.Request, params api.ListListingsParams) {
	filter := models.ListingFilter{
		MinPrice:  params.MinPrice,
		MaxPrice:  params.MaxPrice,
		Available: params.Available,
	}
	if params.City != nil {
		filter.City = strings.TrimSpace(*params.City)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		respond.Error(w, r, booking.InvalidInput("minPrice must not exceed maxPrice"))
		return
	}

	domainListings, err := h.Store.ListListings(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, booking.StoreError(err, "listing"))
		return
	}

	apiListings := make([]*api.Listing, len(domainListings))
	for i, l := range domainListings {
		apiListings[i] = mapping.ToApiListing(&l)
	}
	respond.JSON(w, http.StatusOK, apiListings)
}

// GetListing handles retrieving a single listing.
func (h *ListingsHandler) GetListing(w http.ResponseWriter, r *http.Request, listingId string) {
	l, err := h.Store.GetListing(r.Context(), listingId)
	if err != nil {
		respond.Error(w, r, booking.StoreError(err, "listing"))
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiListing(l))
}

// CreateListing lets owners and admins publish a listing. Owners always own
// what they create; admins may create on behalf of an owner.
func (h *ListingsHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	if !caller.IsAuthenticated() {
		respond.Error(w, r, booking.Unauthenticated())
		return
	}
	if caller.Role != models.RoleOwner && !caller.IsAdmin() {
		respond.Error(w, r, booking.Forbidden("only owners and admins may create listings"))
		return
	}

	var body api.NewListing
	if !respond.Decode(w, r, &body) {
		return
	}

	l := mapping.ToDomainNewListing(&body)
	if l.OwnerId == "" || !caller.IsAdmin() {
		l.OwnerId = caller.UserID
	}
	if err := booking.Check(l); err != nil {
		respond.Error(w, r, err)
		return
	}

	now := time.Now().UTC()
	l.Id = uuid.NewString()
	l.CreatedAt = now
	l.UpdatedAt = now

	created, err := h.Store.CreateListing(r.Context(), l)
	if err != nil {
		respond.Error(w, r, booking.StoreError(err, "listing"))
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiListing(created))
}

// UpdateListing changes the descriptive fields and availability of a listing.
func (h *ListingsHandler) UpdateListing(w http.ResponseWriter, r *http.Request, listingId string) {
	var body api.ListingUpdate
	if !respond.Decode(w, r, &body) {
		return
	}

	l, ok := h.owned(w, r, listingId)
	if !ok {
		return
	}

	mapping.ApplyListingUpdate(l, &body)
	if err := booking.Check(l); err != nil {
		respond.Error(w, r, err)
		return
	}
	l.UpdatedAt = time.Now().UTC()

	updated, err := h.Store.UpdateListing(r.Context(), l)
	if err != nil {
		respond.Error(w, r, booking.StoreError(err, "listing"))
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiListing(updated))
}

// DeleteListing removes a listing that has no active reservations.
func (h *ListingsHandler) DeleteListing(w http.ResponseWriter, r *http.Request, listingId string) {
	if _, ok := h.owned(w, r, listingId); !ok {
		return
	}
	if err := h.Store.DeleteListing(r.Context(), listingId); err != nil {
		respond.Error(w, r, booking.StoreError(err, "listing"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// owned loads a listing the caller may modify, answering the request itself
// when it may not.
func (h *ListingsHandler) owned(w http.ResponseWriter, r *http.Request, listingId string) (*models.Listing, bool) {
	caller := identity.FromContext(r.Context())
	if !caller.IsAuthenticated() {
		respond.Error(w, r, booking.Unauthenticated())
		return nil, false
	}
	l, err := h.Store.GetListing(r.Context(), listingId)
	if err != nil {
		respond.Error(w, r, booking.StoreError(err, "listing"))
		return nil, false
	}
	if !caller.CanActFor(l.OwnerId) {
		respond.Error(w, r, booking.Forbidden("only the owner or an admin may modify this listing"))
		return nil, false
	}
	return l, true
}

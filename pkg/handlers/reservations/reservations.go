package reservations

import (
	"net/http"

	"github.com/chris/apartment-rentals/pkg/api"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/handlers/respond"
	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/mapping"
	"github.com/chris/apartment-rentals/pkg/models"
)

// ReservationsHandler holds the dependencies for reservation-related handlers.
type ReservationsHandler struct {
	Engine *booking.Engine
}

// NewReservationsHandler creates a new ReservationsHandler.
func NewReservationsHandler(engine *booking.Engine) *ReservationsHandler {
	return &ReservationsHandler{Engine: engine}
}

// CreateReservation books a listing for the caller.
func (h *ReservationsHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var body api.NewReservation
	if !respond.Decode(w, r, &body) {
		return
	}

	res, err := h.Engine.Create(r.Context(), identity.FromContext(r.Context()), mapping.ToDomainNewReservation(&body))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiReservation(res))
}

// ListReservations lists reservations with their listing and renter.
func (h *ReservationsHandler) ListReservations(w http.ResponseWriter, r *http.Request, params api.ListReservationsParams) {
	var filter models.ReservationFilter
	if params.RenterId != nil {
		filter.RenterId = *params.RenterId
	}
	if params.ListingId != nil {
		filter.ListingId = *params.ListingId
	}
	if params.Status != nil {
		filter.Status = models.ReservationStatus(*params.Status)
	}

	views, err := h.Engine.List(r.Context(), identity.FromContext(r.Context()), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	apiReservations := make([]*api.Reservation, len(views))
	for i, view := range views {
		apiReservations[i] = mapping.ToApiReservationView(&view)
	}
	respond.JSON(w, http.StatusOK, apiReservations)
}

// GetReservation returns one reservation with its projections.
func (h *ReservationsHandler) GetReservation(w http.ResponseWriter, r *http.Request, reservationId string) {
	view, err := h.Engine.Get(r.Context(), identity.FromContext(r.Context()), reservationId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiReservationView(view))
}

// CancelReservation cancels a reservation. Repeating it is harmless.
func (h *ReservationsHandler) CancelReservation(w http.ResponseWriter, r *http.Request, reservationId string) {
	res, err := h.Engine.Cancel(r.Context(), identity.FromContext(r.Context()), reservationId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiReservation(res))
}

// ConfirmReservation moves a pending reservation to confirmed.
func (h *ReservationsHandler) ConfirmReservation(w http.ResponseWriter, r *http.Request, reservationId string) {
	res, err := h.Engine.Confirm(r.Context(), identity.FromContext(r.Context()), reservationId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiReservation(res))
}

// GetReservationReceipt returns what the receipt page shows.
func (h *ReservationsHandler) GetReservationReceipt(w http.ResponseWriter, r *http.Request, reservationId string) {
	receipt, err := h.Engine.Receipt(r.Context(), identity.FromContext(r.Context()), reservationId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiReceipt(receipt))
}

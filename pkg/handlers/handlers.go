package handlers

import (
	"net/http"

	"github.com/chris/apartment-rentals/pkg/api"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/handlers/listings"
	"github.com/chris/apartment-rentals/pkg/handlers/payments"
	"github.com/chris/apartment-rentals/pkg/handlers/reservations"
	"github.com/chris/apartment-rentals/pkg/handlers/respond"
	"github.com/chris/apartment-rentals/pkg/handlers/users"
	"github.com/chris/apartment-rentals/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// ApiHandler implements the generated server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*listings.ListingsHandler
	*reservations.ReservationsHandler
	*payments.PaymentsHandler
	*users.UsersHandler
}

// NewApiHandler wires the resource handlers to the store and the booking
// services.
func NewApiHandler(store storage.ApiStore, engine *booking.Engine, recorder *booking.Recorder) *ApiHandler {
	return &ApiHandler{
		ListingsHandler:     listings.NewListingsHandler(store),
		ReservationsHandler: reservations.NewReservationsHandler(engine),
		PaymentsHandler:     payments.NewPaymentsHandler(recorder),
		UsersHandler:        users.NewUsersHandler(store),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// Mount registers the API routes on r. Query and path parameters that fail to
// bind are answered with an invalid_input error body.
func Mount(r chi.Router, si api.ServerInterface) http.Handler {
	return api.HandlerWithOptions(si, api.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			respond.Error(w, r, booking.InvalidInput("%v", err))
		},
	})
}

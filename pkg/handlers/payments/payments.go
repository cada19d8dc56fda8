package payments

import (
	"net/http"

	"github.com/chris/apartment-rentals/pkg/api"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/handlers/respond"
	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/mapping"
)

// PaymentsHandler holds the dependencies for payment-related handlers.
type PaymentsHandler struct {
	Recorder *booking.Recorder
}

// NewPaymentsHandler creates a new PaymentsHandler.
func NewPaymentsHandler(recorder *booking.Recorder) *PaymentsHandler {
	return &PaymentsHandler{Recorder: recorder}
}

// RecordPayment pays for a reservation.
func (h *PaymentsHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var body api.NewPayment
	if !respond.Decode(w, r, &body) {
		return
	}

	result, err := h.Recorder.Pay(r.Context(), identity.FromContext(r.Context()), mapping.ToDomainNewPayment(&body))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiRecordedPayment(result))
}

// GetPayment returns the payment of a reservation.
func (h *PaymentsHandler) GetPayment(w http.ResponseWriter, r *http.Request, params api.GetPaymentParams) {
	payment, err := h.Recorder.Lookup(r.Context(), identity.FromContext(r.Context()), params.ReservationId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiPayment(payment))
}

// SettlePayment confirms a pending cash payment.
func (h *PaymentsHandler) SettlePayment(w http.ResponseWriter, r *http.Request, reservationId string) {
	result, err := h.Recorder.Settle(r.Context(), identity.FromContext(r.Context()), reservationId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiRecordedPayment(result))
}

// ListAdminPayments lists the most recent payments.
func (h *PaymentsHandler) ListAdminPayments(w http.ResponseWriter, r *http.Request, params api.ListAdminPaymentsParams) {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	domainPayments, err := h.Recorder.List(r.Context(), identity.FromContext(r.Context()), limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	apiPayments := make([]*api.Payment, len(domainPayments))
	for i, p := range domainPayments {
		apiPayments[i] = mapping.ToApiPayment(&p)
	}
	respond.JSON(w, http.StatusOK, apiPayments)
}

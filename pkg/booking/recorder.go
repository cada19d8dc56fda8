package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/metrics"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/queue"
	"github.com/chris/apartment-rentals/pkg/storage"
	"github.com/chris/apartment-rentals/pkg/websockets"
	"github.com/google/uuid"
)

const (
	// DefaultPaymentsLimit is the admin payment page size when none is asked for.
	DefaultPaymentsLimit = 50
	// MaxPaymentsLimit caps any requested admin payment page size.
	MaxPaymentsLimit = 200
)

// PaymentResult is a committed payment and the reservation it advanced.
type PaymentResult struct {
	Payment     *models.Payment
	Reservation *models.Reservation
}

// Recorder records the single payment of a reservation and the status change
// it causes.
type Recorder struct {
	store     storage.ApiStore
	publisher websockets.Publisher
	events    queue.Publisher
	now       func() time.Time
	newID     func() string
}

// NewRecorder creates a Recorder. events may be nil when no queue is configured.
func NewRecorder(store storage.ApiStore, publisher websockets.Publisher, events queue.Publisher) *Recorder {
	if publisher == nil {
		publisher = &websockets.NoOpPublisher{}
	}
	return &Recorder{
		store:     store,
		publisher: publisher,
		events:    events,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Pay records a payment for a reservation. The amount is always the
// reservation total. Cash payments stay pending until settled; every other
// method pays the reservation immediately.
func (r *Recorder) Pay(ctx context.Context, caller identity.Identity, in PayInput) (*PaymentResult, error) {
	result, err := r.pay(ctx, caller, in)
	if err != nil {
		metrics.Booking().ObserveReservation("pay", outcome(err))
		return nil, err
	}
	metrics.Booking().ObserveReservation("pay", "ok")
	metrics.Booking().ObservePayment(string(result.Payment.Method), string(result.Payment.Status))

	r.announce(ctx, queue.EventPaymentRecorded, result)
	return result, nil
}

func (r *Recorder) pay(ctx context.Context, caller identity.Identity, in PayInput) (*PaymentResult, error) {
	if !caller.IsAuthenticated() {
		return nil, Unauthenticated()
	}
	valid, err := ValidatePayment(in)
	if err != nil {
		return nil, err
	}
	// Only admins record payments on behalf of someone else.
	if valid.PayerID == "" || !caller.IsAdmin() {
		valid.PayerID = caller.UserID
	}

	res, err := r.store.GetReservation(ctx, valid.ReservationID)
	if err != nil {
		return nil, fromStore(err, "reservation")
	}
	if !caller.CanActFor(res.RenterId) {
		return nil, Forbidden("only the renter or an admin may pay for this reservation")
	}
	if res.PaymentId != "" {
		return nil, fromStore(storage.ErrDuplicatePayment, "payment")
	}
	if res.Status == models.ReservationCancelled {
		return nil, newError(KindConflict, "a cancelled reservation cannot be paid", nil)
	}

	paymentStatus, to := models.DeriveStatuses(valid.Method)
	if paymentStatus == models.PaymentPending {
		// Cash leaves the reservation where it is until settlement.
		to = res.Status
	}
	if to != res.Status && !models.CanTransition(res.Status, to) {
		return nil, newError(KindConflict, fmt.Sprintf("a %s reservation cannot be paid", res.Status), nil)
	}

	now := r.now()
	payment := &models.Payment{
		ReservationId: res.Id,
		Id:            r.newID(),
		PayerId:       valid.PayerID,
		Amount:        res.TotalPrice,
		Method:        valid.Method,
		Status:        paymentStatus,
		PaidAt:        now,
	}

	recorded, err := r.store.RecordPayment(ctx, payment, res.Status, to)
	if err != nil {
		return nil, fromStore(err, "reservation")
	}

	updated := *res
	updated.Status = to
	updated.PaymentId = recorded.Id
	updated.UpdatedAt = now
	return &PaymentResult{Payment: recorded, Reservation: &updated}, nil
}

// Lookup returns the payment of a reservation. Callers other than the payer,
// the renter and admins get NotFound.
func (r *Recorder) Lookup(ctx context.Context, caller identity.Identity, reservationID string) (*models.Payment, error) {
	if !caller.IsAuthenticated() {
		return nil, Unauthenticated()
	}
	if reservationID == "" {
		return nil, InvalidInput("reservationId is required")
	}
	payment, err := r.store.GetPayment(ctx, reservationID)
	if err != nil {
		return nil, fromStore(err, "payment")
	}
	if caller.IsAdmin() || payment.PayerId == caller.UserID {
		return payment, nil
	}
	res, err := r.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, fromStore(err, "payment")
	}
	if res.RenterId != caller.UserID {
		return nil, fromStore(storage.ErrNotFound, "payment")
	}
	return payment, nil
}

// Settle confirms a pending cash payment and pays its reservation. Settling a
// paid payment is a no-op. Admin only.
func (r *Recorder) Settle(ctx context.Context, caller identity.Identity, reservationID string) (*PaymentResult, error) {
	result, changed, err := r.settle(ctx, caller, reservationID)
	metrics.Booking().ObserveReservation("settle", outcome(err))
	if err != nil {
		return nil, err
	}
	if changed {
		metrics.Booking().ObservePayment(string(result.Payment.Method), string(result.Payment.Status))
		r.announce(ctx, queue.EventPaymentSettled, result)
	}
	return result, nil
}

func (r *Recorder) settle(ctx context.Context, caller identity.Identity, reservationID string) (*PaymentResult, bool, error) {
	if !caller.IsAuthenticated() {
		return nil, false, Unauthenticated()
	}
	if !caller.IsAdmin() {
		return nil, false, Forbidden("only an admin may settle payments")
	}

	payment, err := r.store.GetPayment(ctx, reservationID)
	if err != nil {
		return nil, false, fromStore(err, "payment")
	}
	res, err := r.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, false, fromStore(err, "reservation")
	}

	switch payment.Status {
	case models.PaymentPaid:
		return &PaymentResult{Payment: payment, Reservation: res}, false, nil
	case models.PaymentFailed:
		return nil, false, newError(KindConflict, "a failed payment cannot be settled", nil)
	}
	if res.Status != models.ReservationPaid && !models.CanTransition(res.Status, models.ReservationPaid) {
		return nil, false, newError(KindConflict, fmt.Sprintf("a %s reservation cannot be paid", res.Status), nil)
	}

	settled, err := r.store.SettlePayment(ctx, payment, res.Status)
	if err != nil {
		return nil, false, fromStore(err, "payment")
	}

	updated := *res
	updated.Status = models.ReservationPaid
	updated.UpdatedAt = settled.PaidAt
	return &PaymentResult{Payment: settled, Reservation: &updated}, true, nil
}

// List returns the most recent payments. Admin only. limit defaults to
// DefaultPaymentsLimit and is capped at MaxPaymentsLimit.
func (r *Recorder) List(ctx context.Context, caller identity.Identity, limit int) ([]models.Payment, error) {
	if !caller.IsAuthenticated() {
		return nil, Unauthenticated()
	}
	if !caller.IsAdmin() {
		return nil, Forbidden("only an admin may list payments")
	}
	switch {
	case limit <= 0:
		limit = DefaultPaymentsLimit
	case limit > MaxPaymentsLimit:
		limit = MaxPaymentsLimit
	}
	payments, err := r.store.ListPayments(ctx, int32(limit))
	if err != nil {
		return nil, fromStore(err, "payment")
	}
	return payments, nil
}

// announce publishes the committed change. Failures are logged only; the
// payment is already durable.
func (r *Recorder) announce(ctx context.Context, eventType queue.EventType, result *PaymentResult) {
	notifyReservation(ctx, r.publisher, result.Reservation)

	p := result.Payment
	err := r.publisher.Publish(ctx, websockets.Message{
		Type: websockets.MessageTypePaymentUpdate,
		Payload: websockets.PaymentUpdatePayload{
			ReservationID:     p.ReservationId,
			PaymentID:         p.Id,
			Method:            string(p.Method),
			Status:            string(p.Status),
			Amount:            p.Amount,
			ReservationStatus: string(result.Reservation.Status),
		},
		UserID: result.Reservation.RenterId,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to publish payment update", "reservation_id", p.ReservationId, "error", err)
	}

	if r.events == nil {
		return
	}
	err = r.events.PublishPaymentEvent(ctx, queue.PaymentEvent{
		Type:              eventType,
		ReservationID:     p.ReservationId,
		PaymentID:         p.Id,
		PayerID:           p.PayerId,
		Method:            string(p.Method),
		Status:            string(p.Status),
		Amount:            p.Amount,
		ReservationStatus: string(result.Reservation.Status),
		OccurredAt:        p.PaidAt,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.ErrorContext(ctx, "failed to publish payment event", "reservation_id", p.ReservationId, "event", eventType, "error", err)
	}
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/metrics"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
	"github.com/chris/apartment-rentals/pkg/websockets"
	"github.com/google/uuid"
)

// DefaultMaxAttempts bounds how often a create is retried after losing the
// listing version lock.
const DefaultMaxAttempts = 3

// Engine validates reservation requests and drives reservations through their
// lifecycle.
type Engine struct {
	store       storage.ApiStore
	publisher   websockets.Publisher
	maxAttempts int
	now         func() time.Time
	newID       func() string
}

// NewEngine creates an Engine. A nil publisher disables live updates.
func NewEngine(store storage.ApiStore, publisher websockets.Publisher) *Engine {
	if publisher == nil {
		publisher = &websockets.NoOpPublisher{}
	}
	return &Engine{
		store:       store,
		publisher:   publisher,
		maxAttempts: DefaultMaxAttempts,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// Create books a listing for the requested dates. An empty renter id books
// for the caller; only admins may book for somebody else.
func (e *Engine) Create(ctx context.Context, caller identity.Identity, in CreateReservationInput) (*models.Reservation, error) {
	res, err := e.create(ctx, caller, in)
	metrics.Booking().ObserveReservation("create", outcome(err))
	if err != nil {
		return nil, err
	}
	e.notify(ctx, res)
	return res, nil
}

func (e *Engine) create(ctx context.Context, caller identity.Identity, in CreateReservationInput) (*models.Reservation, error) {
	if !caller.IsAuthenticated() {
		return nil, Unauthenticated()
	}
	if strings.TrimSpace(in.RenterID) == "" {
		in.RenterID = caller.UserID
	}
	valid, err := ValidateReservation(in)
	if err != nil {
		return nil, err
	}
	if !caller.CanActFor(valid.RenterID) {
		return nil, Forbidden("cannot book on behalf of another user")
	}

	for attempt := 1; ; attempt++ {
		listing, err := e.store.GetListing(ctx, valid.ListingID)
		if err != nil {
			return nil, fromStore(err, "listing")
		}
		if !listing.Available {
			return nil, fromStore(storage.ErrListingUnavailable, "listing")
		}
		if id, overlaps := listing.FindOverlap(valid.Range()); overlaps {
			return nil, fromStore(fmt.Errorf("reservation %s: %w", id, storage.ErrBookingConflict), "reservation")
		}

		total := models.TotalPrice(listing.Price, valid.Start, valid.End)
		if total <= 0 {
			return nil, InvalidInput("listing price yields a non-positive total")
		}

		now := e.now()
		res := &models.Reservation{
			Id:         e.newID(),
			ListingId:  valid.ListingID,
			RenterId:   valid.RenterID,
			StartDate:  valid.Start,
			EndDate:    valid.End,
			TotalPrice: total,
			Status:     models.ReservationPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		// Finished stays no longer block anything; drop them while the listing
		// is being rewritten anyway.
		created, err := e.store.CreateReservation(ctx, res, listing.BookingVersion, listing.ExpiredRanges(now))
		if err == nil {
			return created, nil
		}
		if errors.Is(err, storage.ErrVersionConflict) && attempt < e.maxAttempts {
			metrics.Booking().ObserveRetry()
			slog.DebugContext(ctx, "listing booking version moved, retrying", "listing_id", valid.ListingID, "attempt", attempt)
			continue
		}
		return nil, fromStore(err, "reservation")
	}
}

// Cancel cancels a reservation on behalf of its renter or an admin. Cancelling
// a cancelled reservation returns it unchanged.
func (e *Engine) Cancel(ctx context.Context, caller identity.Identity, reservationID string) (*models.Reservation, error) {
	res, changed, err := e.cancel(ctx, caller, reservationID)
	metrics.Booking().ObserveReservation("cancel", outcome(err))
	if err != nil {
		return nil, err
	}
	if changed {
		e.notify(ctx, res)
	}
	return res, nil
}

func (e *Engine) cancel(ctx context.Context, caller identity.Identity, reservationID string) (*models.Reservation, bool, error) {
	if !caller.IsAuthenticated() {
		return nil, false, Unauthenticated()
	}
	res, err := e.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, false, fromStore(err, "reservation")
	}
	if !caller.CanActFor(res.RenterId) {
		return nil, false, Forbidden("only the renter or an admin may cancel this reservation")
	}

	for attempt := 1; ; attempt++ {
		if res.Status == models.ReservationCancelled {
			return res, false, nil
		}
		if !models.CanTransition(res.Status, models.ReservationCancelled) {
			return nil, false, newError(KindConflict, fmt.Sprintf("a %s reservation cannot be cancelled", res.Status), nil)
		}

		cancelled, err := e.store.CancelReservation(ctx, res)
		if err == nil {
			return cancelled, true, nil
		}
		if !errors.Is(err, storage.ErrStatusConflict) || attempt >= e.maxAttempts {
			return nil, false, fromStore(err, "reservation")
		}
		// The status moved under us; decide again on the fresh copy.
		if res, err = e.store.GetReservation(ctx, reservationID); err != nil {
			return nil, false, fromStore(err, "reservation")
		}
	}
}

// Confirm moves a pending reservation to confirmed. Admin only.
func (e *Engine) Confirm(ctx context.Context, caller identity.Identity, reservationID string) (*models.Reservation, error) {
	res, changed, err := e.confirm(ctx, caller, reservationID)
	metrics.Booking().ObserveReservation("confirm", outcome(err))
	if err != nil {
		return nil, err
	}
	if changed {
		e.notify(ctx, res)
	}
	return res, nil
}

func (e *Engine) confirm(ctx context.Context, caller identity.Identity, reservationID string) (*models.Reservation, bool, error) {
	if !caller.IsAuthenticated() {
		return nil, false, Unauthenticated()
	}
	if !caller.IsAdmin() {
		return nil, false, Forbidden("only an admin may confirm reservations")
	}
	res, err := e.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, false, fromStore(err, "reservation")
	}
	if res.Status == models.ReservationConfirmed {
		return res, false, nil
	}
	if !models.CanTransition(res.Status, models.ReservationConfirmed) {
		return nil, false, newError(KindConflict, fmt.Sprintf("a %s reservation cannot be confirmed", res.Status), nil)
	}
	confirmed, err := e.store.UpdateReservationStatus(ctx, reservationID, res.Status, models.ReservationConfirmed)
	if err != nil {
		return nil, false, fromStore(err, "reservation")
	}
	return confirmed, true, nil
}

// Get returns a reservation with its projections. Callers other than the
// renter and admins get NotFound.
func (e *Engine) Get(ctx context.Context, caller identity.Identity, reservationID string) (*ReservationView, error) {
	res, err := e.readable(ctx, caller, reservationID)
	if err != nil {
		return nil, err
	}
	view := newProjector(e.store).view(ctx, *res)
	return &view, nil
}

// List returns reservations matching filter, newest first. Non-admins only
// ever see their own reservations whatever renter id they ask for.
func (e *Engine) List(ctx context.Context, caller identity.Identity, filter models.ReservationFilter) ([]ReservationView, error) {
	if !caller.IsAuthenticated() {
		return nil, Unauthenticated()
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, InvalidInput("unknown reservation status %q", filter.Status)
	}
	if !caller.IsAdmin() {
		filter.RenterId = caller.UserID
	}

	reservations, err := e.store.ListReservations(ctx, filter)
	if err != nil {
		return nil, fromStore(err, "reservation")
	}

	p := newProjector(e.store)
	views := make([]ReservationView, 0, len(reservations))
	for _, res := range reservations {
		views = append(views, p.view(ctx, res))
	}
	return views, nil
}

// Receipt returns the reservation with its listing, its payment if any, and
// the length of the stay.
func (e *Engine) Receipt(ctx context.Context, caller identity.Identity, reservationID string) (*Receipt, error) {
	res, err := e.readable(ctx, caller, reservationID)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		Reservation: *res,
		Listing:     newProjector(e.store).listing(ctx, res.ListingId),
		Days:        models.Days(res.StartDate, res.EndDate),
	}

	payment, err := e.store.GetPayment(ctx, reservationID)
	switch {
	case err == nil:
		receipt.Payment = payment
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fromStore(err, "payment")
	}
	return receipt, nil
}

func (e *Engine) readable(ctx context.Context, caller identity.Identity, reservationID string) (*models.Reservation, error) {
	if !caller.IsAuthenticated() {
		return nil, Unauthenticated()
	}
	res, err := e.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, fromStore(err, "reservation")
	}
	if !caller.CanActFor(res.RenterId) {
		return nil, fromStore(storage.ErrNotFound, "reservation")
	}
	return res, nil
}

func (e *Engine) notify(ctx context.Context, res *models.Reservation) {
	notifyReservation(ctx, e.publisher, res)
}

func notifyReservation(ctx context.Context, publisher websockets.Publisher, res *models.Reservation) {
	err := publisher.Publish(ctx, websockets.Message{
		Type: websockets.MessageTypeReservationUpdate,
		Payload: websockets.ReservationUpdatePayload{
			ReservationID: res.Id,
			ListingID:     res.ListingId,
			RenterID:      res.RenterId,
			Status:        string(res.Status),
			UpdatedAt:     res.UpdatedAt,
		},
		UserID: res.RenterId,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to publish reservation update", "reservation_id", res.Id, "error", err)
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(KindOf(err))
}

package booking

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
)

// ListingSummary is the part of a listing shown next to a reservation.
type ListingSummary struct {
	Id    string
	Title string
	City  string
	Price int64
}

// UserSummary is the part of a user shown next to a reservation.
type UserSummary struct {
	Id       string
	FullName string
	Email    string
}

// ReservationView is a reservation with its listing and renter attached.
// Either projection is nil when the referenced record no longer exists.
type ReservationView struct {
	models.Reservation
	Listing *ListingSummary
	Renter  *UserSummary
}

// Receipt gathers what the receipt page displays.
type Receipt struct {
	Reservation models.Reservation
	Listing     *ListingSummary
	Payment     *models.Payment
	Days        int64
}

func summarizeListing(l *models.Listing) *ListingSummary {
	if l == nil {
		return nil
	}
	return &ListingSummary{Id: l.Id, Title: l.Title, City: l.City, Price: l.Price}
}

func summarizeUser(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{Id: u.Id, FullName: u.FullName, Email: u.Email}
}

// projector loads each referenced listing and user at most once.
type projector struct {
	store    storage.ApiStore
	listings map[string]*ListingSummary
	users    map[string]*UserSummary
}

func newProjector(store storage.ApiStore) *projector {
	return &projector{
		store:    store,
		listings: make(map[string]*ListingSummary),
		users:    make(map[string]*UserSummary),
	}
}

func (p *projector) listing(ctx context.Context, id string) *ListingSummary {
	if summary, ok := p.listings[id]; ok {
		return summary
	}
	l, err := p.store.GetListing(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.WarnContext(ctx, "failed to load listing projection", "listing_id", id, "error", err)
	}
	summary := summarizeListing(l)
	p.listings[id] = summary
	return summary
}

func (p *projector) user(ctx context.Context, id string) *UserSummary {
	if summary, ok := p.users[id]; ok {
		return summary
	}
	u, err := p.store.GetUser(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.WarnContext(ctx, "failed to load user projection", "user_id", id, "error", err)
	}
	summary := summarizeUser(u)
	p.users[id] = summary
	return summary
}

func (p *projector) view(ctx context.Context, res models.Reservation) ReservationView {
	return ReservationView{
		Reservation: res,
		Listing:     p.listing(ctx, res.ListingId),
		Renter:      p.user(ctx, res.RenterId),
	}
}

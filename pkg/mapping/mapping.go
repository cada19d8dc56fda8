package mapping

import (
	"github.com/chris/apartment-rentals/pkg/api"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/models"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ToApiListing converts a domain Listing model to an API Listing model.
func ToApiListing(l *models.Listing) *api.Listing {
	return &api.Listing{
		Id:          l.Id,
		Title:       l.Title,
		Description: optional(l.Description),
		Price:       l.Price,
		City:        l.City,
		Address:     optional(l.Address),
		Available:   l.Available,
		OwnerId:     optional(l.OwnerId),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// ToDomainNewListing converts an API NewListing model to a domain Listing
// model. Listings are available unless the request says otherwise.
func ToDomainNewListing(in *api.NewListing) *models.Listing {
	l := &models.Listing{
		Title:     in.Title,
		Price:     in.Price,
		City:      in.City,
		Available: true,
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Address != nil {
		l.Address = *in.Address
	}
	if in.Available != nil {
		l.Available = *in.Available
	}
	if in.OwnerId != nil {
		l.OwnerId = *in.OwnerId
	}
	return l
}

// ApplyListingUpdate copies the fields present in update onto l.
func ApplyListingUpdate(l *models.Listing, update *api.ListingUpdate) {
	if update.Title != nil {
		l.Title = *update.Title
	}
	if update.Description != nil {
		l.Description = *update.Description
	}
	if update.Price != nil {
		l.Price = *update.Price
	}
	if update.City != nil {
		l.City = *update.City
	}
	if update.Address != nil {
		l.Address = *update.Address
	}
	if update.Available != nil {
		l.Available = *update.Available
	}
}

// ToApiReservation converts a domain Reservation model to an API Reservation model.
func ToApiReservation(res *models.Reservation) *api.Reservation {
	return &api.Reservation{
		Id:         res.Id,
		ListingId:  res.ListingId,
		RenterId:   res.RenterId,
		StartDate:  openapi_types.Date{Time: res.StartDate},
		EndDate:    openapi_types.Date{Time: res.EndDate},
		TotalPrice: res.TotalPrice,
		Status:     api.ReservationStatus(res.Status),
		PaymentId:  optional(res.PaymentId),
		CreatedAt:  res.CreatedAt,
		UpdatedAt:  res.UpdatedAt,
	}
}

// ToApiReservationView converts a reservation with projections.
func ToApiReservationView(view *booking.ReservationView) *api.Reservation {
	out := ToApiReservation(&view.Reservation)
	out.Listing = ToApiListingSummary(view.Listing)
	if view.Renter != nil {
		out.Renter = &api.UserSummary{
			Id:       view.Renter.Id,
			FullName: view.Renter.FullName,
			Email:    view.Renter.Email,
		}
	}
	return out
}

// ToApiListingSummary returns nil for a nil summary.
func ToApiListingSummary(s *booking.ListingSummary) *api.ListingSummary {
	if s == nil {
		return nil
	}
	return &api.ListingSummary{Id: s.Id, Title: s.Title, City: s.City, Price: s.Price}
}

// ToDomainNewReservation converts an API NewReservation model to engine input.
func ToDomainNewReservation(in *api.NewReservation) booking.CreateReservationInput {
	out := booking.CreateReservationInput{
		ListingID:  in.ListingId,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		TotalPrice: in.TotalPrice,
	}
	if in.RenterId != nil {
		out.RenterID = *in.RenterId
	}
	return out
}

// ToApiPayment converts a domain Payment model to an API Payment model.
func ToApiPayment(p *models.Payment) *api.Payment {
	return &api.Payment{
		Id:            p.Id,
		ReservationId: p.ReservationId,
		PayerId:       optional(p.PayerId),
		Amount:        p.Amount,
		Method:        api.PaymentMethod(p.Method),
		Status:        api.PaymentStatus(p.Status),
		PaidAt:        p.PaidAt,
		ReceiptNumber: optional(p.ReceiptNumber),
	}
}

// ToDomainNewPayment converts an API NewPayment model to recorder input.
func ToDomainNewPayment(in *api.NewPayment) booking.PayInput {
	out := booking.PayInput{
		ReservationID: in.ReservationId,
		Method:        in.Method,
		Amount:        in.Amount,
	}
	if in.PayerId != nil {
		out.PayerID = *in.PayerId
	}
	return out
}

// ToApiRecordedPayment converts a recorder result.
func ToApiRecordedPayment(result *booking.PaymentResult) *api.RecordedPayment {
	return &api.RecordedPayment{
		Payment:     *ToApiPayment(result.Payment),
		Reservation: *ToApiReservation(result.Reservation),
	}
}

// ToApiReceipt converts a receipt.
func ToApiReceipt(r *booking.Receipt) *api.Receipt {
	out := &api.Receipt{
		Reservation: *ToApiReservation(&r.Reservation),
		Listing:     ToApiListingSummary(r.Listing),
		Days:        r.Days,
	}
	if r.Payment != nil {
		out.Payment = ToApiPayment(r.Payment)
	}
	return out
}

// ToApiUser converts a domain User model to an API User model.
func ToApiUser(u *models.User) *api.User {
	return &api.User{
		Id:        u.Id,
		FullName:  u.FullName,
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      api.UserRole(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// ToDomainNewUser converts an API NewUser model to a domain User model.
// The id and creation time are left to the caller.
func ToDomainNewUser(in *api.NewUser) *models.User {
	u := &models.User{
		FullName: in.FullName,
		UserName: in.UserName,
		Email:    in.Email,
		Role:     models.RoleRenter,
	}
	if in.Id != nil {
		u.Id = *in.Id
	}
	if in.Role != nil {
		u.Role = models.ParseRole(string(*in.Role))
	}
	return u
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

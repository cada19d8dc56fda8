package mapping

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/chris/apartment-rentals/pkg/api"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToApiReservation_DatesAreCalendarDays(t *testing.T) {
	res := &models.Reservation{
		Id:         "res-1",
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		TotalPrice: 90000,
		Status:     models.ReservationPending,
	}

	body, err := json.Marshal(ToApiReservation(res))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "2024-01-01", decoded["startDate"])
	assert.Equal(t, "2024-01-31", decoded["endDate"])
	assert.Equal(t, "pending", decoded["status"])
	assert.NotContains(t, decoded, "paymentId")
}

func TestToApiReservationView_Projections(t *testing.T) {
	view := &booking.ReservationView{
		Reservation: models.Reservation{Id: "res-1"},
		Renter:      &booking.UserSummary{Id: "user-1", FullName: "Awa Ngono"},
	}

	out := ToApiReservationView(view)
	assert.Nil(t, out.Listing)
	require.NotNil(t, out.Renter)
	assert.Equal(t, "Awa Ngono", out.Renter.FullName)
}

func TestToDomainNewListing_DefaultsAvailable(t *testing.T) {
	l := ToDomainNewListing(&api.NewListing{Title: "T2 Akwa", Price: 150000, City: "Douala"})
	assert.True(t, l.Available)

	off := false
	l = ToDomainNewListing(&api.NewListing{Title: "T2 Akwa", Price: 150000, City: "Douala", Available: &off})
	assert.False(t, l.Available)
}

func TestApplyListingUpdate(t *testing.T) {
	l := &models.Listing{Title: "Old", Price: 100, City: "Douala", Available: true}
	price := int64(200)
	available := false

	ApplyListingUpdate(l, &api.ListingUpdate{Price: &price, Available: &available})

	assert.Equal(t, "Old", l.Title)
	assert.Equal(t, int64(200), l.Price)
	assert.False(t, l.Available)
}

func TestToDomainNewUser_Role(t *testing.T) {
	role := api.Admin
	u := ToDomainNewUser(&api.NewUser{FullName: "A", UserName: "a", Email: "a@example.com", Role: &role})
	assert.Equal(t, models.RoleAdmin, u.Role)

	u = ToDomainNewUser(&api.NewUser{FullName: "B", UserName: "b", Email: "b@example.com"})
	assert.Equal(t, models.RoleRenter, u.Role)
}

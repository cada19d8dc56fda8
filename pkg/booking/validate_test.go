package booking

import (
	"testing"

	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReservation(t *testing.T) {
	t.Run("Trims And Parses", func(t *testing.T) {
		valid, err := ValidateReservation(CreateReservationInput{
			ListingID: " listing-1 ",
			RenterID:  "user-1",
			StartDate: "2024-01-01",
			EndDate:   "2024-01-05T10:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, "listing-1", valid.ListingID)
		assert.Equal(t, int64(4), models.Days(valid.Start, valid.End))
	})

	tests := []struct {
		name string
		in   CreateReservationInput
		msg  string
	}{
		{"blank listing", CreateReservationInput{ListingID: "  ", RenterID: "user-1", StartDate: "2024-01-01", EndDate: "2024-01-02"}, "listingId is required"},
		{"missing renter", CreateReservationInput{ListingID: "listing-1", StartDate: "2024-01-01", EndDate: "2024-01-02"}, "renterId is required"},
		{"bad date", CreateReservationInput{ListingID: "listing-1", RenterID: "user-1", StartDate: "01/02/2024", EndDate: "2024-01-02"}, `startDate: invalid date "01/02/2024": expected YYYY-MM-DD`},
		{"reversed", CreateReservationInput{ListingID: "listing-1", RenterID: "user-1", StartDate: "2024-01-02", EndDate: "2024-01-01"}, "startDate must be before endDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateReservation(tt.in)
			assertKind(t, err, KindInvalidInput)
			var bookingErr *Error
			require.ErrorAs(t, err, &bookingErr)
			assert.Equal(t, tt.msg, bookingErr.Message)
		})
	}
}

func TestCheck(t *testing.T) {
	t.Run("Listing", func(t *testing.T) {
		assert.NoError(t, Check(&models.Listing{Title: "Studio", City: "Douala", Price: 0}))

		err := Check(&models.Listing{Title: "Studio", City: "Douala", Price: -1})
		assertKind(t, err, KindInvalidInput)
		assert.Contains(t, err.Error(), "price must not be negative")

		err = Check(&models.Listing{Title: " ", City: "Douala"})
		assert.Contains(t, err.Error(), "title is required")
	})

	t.Run("User", func(t *testing.T) {
		assert.NoError(t, Check(&models.User{FullName: "Awa Ngono", UserName: "awa", Email: "awa@example.cm"}))

		err := Check(&models.User{FullName: "Awa Ngono", UserName: "awa", Email: "awa.example.cm"})
		assertKind(t, err, KindInvalidInput)
		assert.Contains(t, err.Error(), "email is invalid")
	})
}

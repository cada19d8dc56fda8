package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
	"github.com/chris/apartment-rentals/pkg/storage/mocks"
	"github.com/chris/apartment-rentals/pkg/websockets"
	wsmocks "github.com/chris/apartment-rentals/pkg/websockets/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	renter   = identity.Identity{UserID: "user-1", Role: models.RoleRenter}
	stranger = identity.Identity{UserID: "user-2", Role: models.RoleRenter}
	admin    = identity.Identity{UserID: "admin-1", Role: models.RoleAdmin}
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestEngine(store storage.ApiStore) *Engine {
	e := NewEngine(store, nil)
	e.now = func() time.Time { return fixedNow }
	e.newID = func() string { return "res-new" }
	return e
}

func testListing(version int64, booked map[string]models.DateRange) *models.Listing {
	if booked == nil {
		booked = map[string]models.DateRange{}
	}
	return &models.Listing{
		Id:             "listing-1",
		Title:          "Studio Bastos",
		City:           "Yaounde",
		Price:          90000,
		Available:      true,
		BookingVersion: version,
		BookedRanges:   booked,
	}
}

func bookingInput(start, end string) CreateReservationInput {
	return CreateReservationInput{ListingID: "listing-1", StartDate: start, EndDate: end}
}

func passThrough(ctx context.Context, res *models.Reservation, _ int64, _ []string) (*models.Reservation, error) {
	return res, nil
}

func assertKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}

func TestEngine_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success Computes Price Server Side", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		clientTotal := int64(1)

		store.On("GetListing", ctx, "listing-1").Return(testListing(3, nil), nil).Once()
		store.On("CreateReservation", ctx, mock.MatchedBy(func(res *models.Reservation) bool {
			return res.Id == "res-new" &&
				res.RenterId == "user-1" &&
				res.TotalPrice == 90000 &&
				res.Status == models.ReservationPending &&
				res.StartDate.Equal(day("2024-01-01")) &&
				res.CreatedAt.Equal(fixedNow)
		}), int64(3), mock.Anything).Return(passThrough).Once()

		in := bookingInput("2024-01-01", "2024-01-31")
		in.TotalPrice = &clientTotal
		res, err := engine.Create(ctx, renter, in)

		require.NoError(t, err)
		assert.Equal(t, int64(90000), res.TotalPrice)
		store.AssertExpectations(t)
	})

	t.Run("Ten Days Of A 60000 Listing", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		listing := testListing(0, nil)
		listing.Price = 60000

		store.On("GetListing", ctx, "listing-1").Return(listing, nil)
		store.On("CreateReservation", ctx, mock.Anything, int64(0), mock.Anything).Return(passThrough)

		res, err := engine.Create(ctx, renter, bookingInput("2024-03-01", "2024-03-11"))
		require.NoError(t, err)
		assert.Equal(t, int64(20000), res.TotalPrice)
	})

	t.Run("Overlap On Shared Boundary Day", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		booked := map[string]models.DateRange{
			"res-old": {Start: day("2024-01-10"), End: day("2024-01-20")},
		}

		store.On("GetListing", ctx, "listing-1").Return(testListing(5, booked), nil)

		_, err := engine.Create(ctx, renter, bookingInput("2024-01-20", "2024-01-25"))
		assertKind(t, err, KindConflict)
		store.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Day After Existing End Does Not Overlap", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		booked := map[string]models.DateRange{
			"res-old": {Start: day("2024-01-10"), End: day("2024-01-20")},
		}

		store.On("GetListing", ctx, "listing-1").Return(testListing(5, booked), nil)
		store.On("CreateReservation", ctx, mock.Anything, int64(5), mock.Anything).Return(passThrough).Once()

		_, err := engine.Create(ctx, renter, bookingInput("2024-01-21", "2024-01-25"))
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Releases Finished Stays", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		booked := map[string]models.DateRange{
			"res-dec":   {Start: day("2023-12-01"), End: day("2023-12-20")},
			"res-nov":   {Start: day("2023-11-01"), End: day("2023-11-05")},
			"res-feb":   {Start: day("2024-02-01"), End: day("2024-02-05")},
			"res-today": {Start: day("2023-12-28"), End: day("2024-01-01")},
		}

		store.On("GetListing", ctx, "listing-1").Return(testListing(9, booked), nil)
		store.On("CreateReservation", ctx, mock.Anything, int64(9), []string{"res-dec", "res-nov"}).Return(passThrough).Once()

		_, err := engine.Create(ctx, renter, bookingInput("2024-01-10", "2024-01-20"))
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Listing Missing", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetListing", ctx, "listing-1").Return(nil, fmt.Errorf("listing listing-1: %w", storage.ErrNotFound))

		_, err := engine.Create(ctx, renter, bookingInput("2024-01-01", "2024-01-05"))
		assertKind(t, err, KindNotFound)
	})

	t.Run("Listing Unavailable", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		listing := testListing(1, nil)
		listing.Available = false

		store.On("GetListing", ctx, "listing-1").Return(listing, nil)

		_, err := engine.Create(ctx, renter, bookingInput("2024-01-01", "2024-01-05"))
		assertKind(t, err, KindUnavailable)
	})

	t.Run("Invalid Input Never Reaches The Store", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		cases := []CreateReservationInput{
			bookingInput("2024-01-05", "2024-01-05"),
			bookingInput("2024-01-05", "2024-01-01"),
			bookingInput("not-a-date", "2024-01-01"),
			bookingInput("", "2024-01-01"),
			{StartDate: "2024-01-01", EndDate: "2024-01-02"},
		}
		for _, in := range cases {
			_, err := engine.Create(ctx, renter, in)
			assertKind(t, err, KindInvalidInput)
		}
		store.AssertNotCalled(t, "GetListing", mock.Anything, mock.Anything)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		engine := newTestEngine(new(mocks.ApiStore))

		_, err := engine.Create(ctx, identity.Identity{}, bookingInput("2024-01-01", "2024-01-05"))
		assertKind(t, err, KindUnauthenticated)
	})

	t.Run("Renter Cannot Book For Someone Else", func(t *testing.T) {
		engine := newTestEngine(new(mocks.ApiStore))
		in := bookingInput("2024-01-01", "2024-01-05")
		in.RenterID = "user-2"

		_, err := engine.Create(ctx, renter, in)
		assertKind(t, err, KindForbidden)
	})

	t.Run("Admin Books For Someone Else", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		in := bookingInput("2024-01-01", "2024-01-05")
		in.RenterID = "user-2"

		store.On("GetListing", ctx, "listing-1").Return(testListing(0, nil), nil)
		store.On("CreateReservation", ctx, mock.MatchedBy(func(res *models.Reservation) bool {
			return res.RenterId == "user-2"
		}), int64(0), mock.Anything).Return(passThrough).Once()

		_, err := engine.Create(ctx, admin, in)
		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}

// Two renters read the same listing version; the second commit loses the lock
// and its re-check sees the first reservation.
func TestEngine_Create_ConcurrentLoserSeesConflict(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.ApiStore)
	engine := newTestEngine(store)

	winner := map[string]models.DateRange{
		"res-winner": {Start: day("2024-02-01"), End: day("2024-02-10")},
	}
	store.On("GetListing", ctx, "listing-1").Return(testListing(7, nil), nil).Once()
	store.On("CreateReservation", ctx, mock.Anything, int64(7), mock.Anything).
		Return(nil, fmt.Errorf("listing listing-1: %w", storage.ErrVersionConflict)).Once()
	store.On("GetListing", ctx, "listing-1").Return(testListing(8, winner), nil).Once()

	_, err := engine.Create(ctx, renter, bookingInput("2024-02-05", "2024-02-12"))

	assertKind(t, err, KindConflict)
	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "CreateReservation", 1)
}

func TestEngine_Create_RetriesVersionConflict(t *testing.T) {
	ctx := context.Background()

	t.Run("Succeeds On Fresh Version", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		elsewhere := map[string]models.DateRange{
			"res-other": {Start: day("2024-05-01"), End: day("2024-05-10")},
		}

		store.On("GetListing", ctx, "listing-1").Return(testListing(1, nil), nil).Once()
		store.On("CreateReservation", ctx, mock.Anything, int64(1), mock.Anything).Return(nil, storage.ErrVersionConflict).Once()
		store.On("GetListing", ctx, "listing-1").Return(testListing(2, elsewhere), nil).Once()
		store.On("CreateReservation", ctx, mock.Anything, int64(2), mock.Anything).Return(passThrough).Once()

		res, err := engine.Create(ctx, renter, bookingInput("2024-02-01", "2024-02-03"))
		require.NoError(t, err)
		assert.Equal(t, models.ReservationPending, res.Status)
		store.AssertExpectations(t)
	})

	t.Run("Gives Up After Max Attempts", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetListing", ctx, "listing-1").Return(testListing(1, nil), nil)
		store.On("CreateReservation", ctx, mock.Anything, int64(1), mock.Anything).Return(nil, storage.ErrVersionConflict)

		_, err := engine.Create(ctx, renter, bookingInput("2024-02-01", "2024-02-03"))
		assertKind(t, err, KindConflict)
		store.AssertNumberOfCalls(t, "CreateReservation", DefaultMaxAttempts)
	})

	t.Run("Store Failure Is Internal", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetListing", ctx, "listing-1").Return(testListing(1, nil), nil)
		store.On("CreateReservation", ctx, mock.Anything, int64(1), mock.Anything).Return(nil, errors.New("throttled"))

		_, err := engine.Create(ctx, renter, bookingInput("2024-02-01", "2024-02-03"))
		assertKind(t, err, KindInternal)
	})
}

func testReservation(status models.ReservationStatus) *models.Reservation {
	return &models.Reservation{
		Id:         "res-1",
		ListingId:  "listing-1",
		RenterId:   "user-1",
		StartDate:  day("2024-01-01"),
		EndDate:    day("2024-01-31"),
		TotalPrice: 90000,
		Status:     status,
	}
}

func withStatus(res *models.Reservation, status models.ReservationStatus) *models.Reservation {
	c := *res
	c.Status = status
	return &c
}

func TestEngine_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Renter Cancels And Is Notified", func(t *testing.T) {
		store := new(mocks.ApiStore)
		publisher := new(wsmocks.Publisher)
		engine := NewEngine(store, publisher)
		res := testReservation(models.ReservationPending)

		store.On("GetReservation", ctx, "res-1").Return(res, nil)
		store.On("CancelReservation", ctx, res).Return(withStatus(res, models.ReservationCancelled), nil).Once()
		publisher.On("Publish", ctx, mock.MatchedBy(func(m websockets.Message) bool {
			p, ok := m.Payload.(websockets.ReservationUpdatePayload)
			return ok && m.UserID == "user-1" && p.Status == "cancelled"
		})).Return(nil).Once()

		cancelled, err := engine.Cancel(ctx, renter, "res-1")
		require.NoError(t, err)
		assert.Equal(t, models.ReservationCancelled, cancelled.Status)
		store.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("Admin Cancels Confirmed", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		res := testReservation(models.ReservationConfirmed)

		store.On("GetReservation", ctx, "res-1").Return(res, nil)
		store.On("CancelReservation", ctx, res).Return(withStatus(res, models.ReservationCancelled), nil).Once()

		_, err := engine.Cancel(ctx, admin, "res-1")
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Already Cancelled Is Idempotent", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetReservation", ctx, "res-1").Return(testReservation(models.ReservationCancelled), nil)

		res, err := engine.Cancel(ctx, renter, "res-1")
		require.NoError(t, err)
		assert.Equal(t, models.ReservationCancelled, res.Status)
		store.AssertNotCalled(t, "CancelReservation", mock.Anything, mock.Anything)
	})

	t.Run("Paid Cannot Be Cancelled", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetReservation", ctx, "res-1").Return(testReservation(models.ReservationPaid), nil)

		_, err := engine.Cancel(ctx, renter, "res-1")
		assertKind(t, err, KindConflict)
	})

	t.Run("Stranger Is Forbidden", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetReservation", ctx, "res-1").Return(testReservation(models.ReservationPending), nil)

		_, err := engine.Cancel(ctx, stranger, "res-1")
		assertKind(t, err, KindForbidden)
		store.AssertNotCalled(t, "CancelReservation", mock.Anything, mock.Anything)
	})

	t.Run("Missing", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetReservation", ctx, "res-1").Return(nil, storage.ErrNotFound)

		_, err := engine.Cancel(ctx, renter, "res-1")
		assertKind(t, err, KindNotFound)
	})

	t.Run("Concurrent Cancel Settles On Fresh Copy", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		res := testReservation(models.ReservationPending)

		store.On("GetReservation", ctx, "res-1").Return(res, nil).Once()
		store.On("CancelReservation", ctx, res).Return(nil, storage.ErrStatusConflict).Once()
		store.On("GetReservation", ctx, "res-1").Return(withStatus(res, models.ReservationCancelled), nil).Once()

		out, err := engine.Cancel(ctx, renter, "res-1")
		require.NoError(t, err)
		assert.Equal(t, models.ReservationCancelled, out.Status)
		store.AssertExpectations(t)
	})

	t.Run("Paid Concurrently Becomes Conflict", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		res := testReservation(models.ReservationPending)

		store.On("GetReservation", ctx, "res-1").Return(res, nil).Once()
		store.On("CancelReservation", ctx, res).Return(nil, storage.ErrStatusConflict).Once()
		store.On("GetReservation", ctx, "res-1").Return(withStatus(res, models.ReservationPaid), nil).Once()

		_, err := engine.Cancel(ctx, renter, "res-1")
		assertKind(t, err, KindConflict)
	})
}

// Cancelling releases the dates, so an overlapping booking then goes through.
func TestEngine_CancelReleasesDates(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.ApiStore)
	engine := newTestEngine(store)
	held := testReservation(models.ReservationPending)
	listing := testListing(4, map[string]models.DateRange{held.Id: held.Range()})

	store.On("GetListing", ctx, "listing-1").Return(func(context.Context, string) (*models.Listing, error) {
		c := *listing
		return &c, nil
	})
	store.On("GetReservation", ctx, "res-1").Return(held, nil)
	store.On("CancelReservation", ctx, held).Run(func(mock.Arguments) {
		delete(listing.BookedRanges, held.Id)
		listing.BookingVersion++
	}).Return(withStatus(held, models.ReservationCancelled), nil).Once()
	store.On("CreateReservation", ctx, mock.Anything, int64(5), mock.Anything).Return(passThrough).Once()

	_, err := engine.Create(ctx, stranger, bookingInput("2024-01-10", "2024-01-20"))
	assertKind(t, err, KindConflict)

	_, err = engine.Cancel(ctx, renter, "res-1")
	require.NoError(t, err)

	res, err := engine.Create(ctx, stranger, bookingInput("2024-01-10", "2024-01-20"))
	require.NoError(t, err)
	assert.Equal(t, "user-2", res.RenterId)
	store.AssertExpectations(t)
}

func TestEngine_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin Confirms Pending", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		res := testReservation(models.ReservationPending)

		store.On("GetReservation", ctx, "res-1").Return(res, nil)
		store.On("UpdateReservationStatus", ctx, "res-1", models.ReservationPending, models.ReservationConfirmed).
			Return(withStatus(res, models.ReservationConfirmed), nil).Once()

		out, err := engine.Confirm(ctx, admin, "res-1")
		require.NoError(t, err)
		assert.Equal(t, models.ReservationConfirmed, out.Status)
		store.AssertExpectations(t)
	})

	t.Run("Renter Is Forbidden", func(t *testing.T) {
		engine := newTestEngine(new(mocks.ApiStore))

		_, err := engine.Confirm(ctx, renter, "res-1")
		assertKind(t, err, KindForbidden)
	})

	t.Run("Already Confirmed", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetReservation", ctx, "res-1").Return(testReservation(models.ReservationConfirmed), nil)

		_, err := engine.Confirm(ctx, admin, "res-1")
		require.NoError(t, err)
		store.AssertNotCalled(t, "UpdateReservationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cancelled Cannot Be Confirmed", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetReservation", ctx, "res-1").Return(testReservation(models.ReservationCancelled), nil)

		_, err := engine.Confirm(ctx, admin, "res-1")
		assertKind(t, err, KindConflict)
	})
}

func TestEngine_GetAndList(t *testing.T) {
	ctx := context.Background()
	user := &models.User{Id: "user-1", FullName: "Awa Ngono", Email: "awa@example.com"}

	t.Run("Get Attaches Projections", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetReservation", ctx, "res-1").Return(testReservation(models.ReservationPending), nil)
		store.On("GetListing", ctx, "listing-1").Return(testListing(0, nil), nil)
		store.On("GetUser", ctx, "user-1").Return(user, nil)

		view, err := engine.Get(ctx, renter, "res-1")
		require.NoError(t, err)
		require.NotNil(t, view.Listing)
		require.NotNil(t, view.Renter)
		assert.Equal(t, "Studio Bastos", view.Listing.Title)
		assert.Equal(t, "Awa Ngono", view.Renter.FullName)
	})

	t.Run("Get Hides Other Renters Reservations", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetReservation", ctx, "res-1").Return(testReservation(models.ReservationPending), nil)

		_, err := engine.Get(ctx, stranger, "res-1")
		assertKind(t, err, KindNotFound)
	})

	t.Run("List Forces Own Renter For Non Admins", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		first := testReservation(models.ReservationPending)
		second := withStatus(first, models.ReservationCancelled)
		second.Id = "res-2"

		store.On("ListReservations", ctx, models.ReservationFilter{RenterId: "user-1", ListingId: "listing-1"}).
			Return([]models.Reservation{*first, *second}, nil)
		store.On("GetListing", ctx, "listing-1").Return(nil, storage.ErrNotFound).Once()
		store.On("GetUser", ctx, "user-1").Return(user, nil).Once()

		views, err := engine.List(ctx, renter, models.ReservationFilter{RenterId: "user-9", ListingId: "listing-1"})
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Nil(t, views[0].Listing)
		assert.Equal(t, "Awa Ngono", views[1].Renter.FullName)
		store.AssertExpectations(t)
	})

	t.Run("List Rejects Unknown Status", func(t *testing.T) {
		engine := newTestEngine(new(mocks.ApiStore))

		_, err := engine.List(ctx, admin, models.ReservationFilter{Status: "archived"})
		assertKind(t, err, KindInvalidInput)
	})
}

func TestEngine_Receipt(t *testing.T) {
	ctx := context.Background()

	t.Run("With Payment", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)
		payment := &models.Payment{ReservationId: "res-1", Id: "pay-1", Amount: 90000, Status: models.PaymentPaid}

		store.On("GetReservation", ctx, "res-1").Return(testReservation(models.ReservationPaid), nil)
		store.On("GetListing", ctx, "listing-1").Return(testListing(0, nil), nil)
		store.On("GetPayment", ctx, "res-1").Return(payment, nil)

		receipt, err := engine.Receipt(ctx, renter, "res-1")
		require.NoError(t, err)
		assert.Equal(t, int64(30), receipt.Days)
		assert.Equal(t, "pay-1", receipt.Payment.Id)
		assert.Equal(t, "Yaounde", receipt.Listing.City)
	})

	t.Run("Without Payment", func(t *testing.T) {
		store := new(mocks.ApiStore)
		engine := newTestEngine(store)

		store.On("GetReservation", ctx, "res-1").Return(testReservation(models.ReservationPending), nil)
		store.On("GetListing", ctx, "listing-1").Return(testListing(0, nil), nil)
		store.On("GetPayment", ctx, "res-1").Return(nil, storage.ErrNotFound)

		receipt, err := engine.Receipt(ctx, admin, "res-1")
		require.NoError(t, err)
		assert.Nil(t, receipt.Payment)
	})
}

package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/queue"
	"github.com/chris/apartment-rentals/pkg/storage"
	"github.com/chris/apartment-rentals/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func paidPayment(reservationID string) models.Payment {
	return models.Payment{ReservationId: reservationID, Id: "pay-" + reservationID, Status: models.PaymentPaid}
}

func reservationIn(id string, status models.ReservationStatus) *models.Reservation {
	res := testReservation(status)
	res.Id = id
	return res
}

func TestReconciler_Reconcile(t *testing.T) {
	ctx := context.Background()
	maxAge := 10 * time.Minute

	t.Run("Repairs Lagging Reservations Only", func(t *testing.T) {
		store := new(mocks.Storage)
		reconciler := NewReconciler(store)

		store.On("ListSettledPayments", ctx, maxAge).Return([]models.Payment{
			paidPayment("res-lagging"),
			paidPayment("res-done"),
			paidPayment("res-cancelled"),
			paidPayment("res-gone"),
			paidPayment("res-raced"),
		}, nil)
		store.On("GetReservation", ctx, "res-lagging").Return(reservationIn("res-lagging", models.ReservationPending), nil)
		store.On("GetReservation", ctx, "res-done").Return(reservationIn("res-done", models.ReservationPaid), nil)
		store.On("GetReservation", ctx, "res-cancelled").Return(reservationIn("res-cancelled", models.ReservationCancelled), nil)
		store.On("GetReservation", ctx, "res-gone").Return(nil, storage.ErrNotFound)
		store.On("GetReservation", ctx, "res-raced").Return(reservationIn("res-raced", models.ReservationConfirmed), nil)

		store.On("UpdateReservationStatus", ctx, "res-lagging", models.ReservationPending, models.ReservationPaid).
			Return(reservationIn("res-lagging", models.ReservationPaid), nil).Once()
		store.On("UpdateReservationStatus", ctx, "res-raced", models.ReservationConfirmed, models.ReservationPaid).
			Return(nil, storage.ErrStatusConflict).Once()

		report, err := reconciler.Reconcile(ctx, maxAge)
		require.NoError(t, err)
		assert.Equal(t, ReconcileReport{Examined: 5, Repaired: 1, Skipped: 3, Failed: 1}, report)
		store.AssertExpectations(t)
	})

	t.Run("Listing Fails", func(t *testing.T) {
		store := new(mocks.Storage)
		reconciler := NewReconciler(store)

		store.On("ListSettledPayments", ctx, maxAge).Return(nil, errors.New("throttled"))

		_, err := reconciler.Reconcile(ctx, maxAge)
		assert.Error(t, err)
	})
}

func TestReceiptNumber(t *testing.T) {
	paidAt := time.Date(2024, 3, 7, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "RCT-20240307-0F1E2D3C", ReceiptNumber("0f1e2d3c-aaaa-bbbb-cccc-000000000000", paidAt))
	assert.Equal(t, "RCT-20240307-AB", ReceiptNumber("ab", paidAt))
}

func TestReceiptStamper_Stamp(t *testing.T) {
	ctx := context.Background()
	event := queue.PaymentEvent{
		Type:          queue.EventPaymentRecorded,
		ReservationID: "res-1",
		PaymentID:     "0f1e2d3c-aaaa-bbbb-cccc-000000000000",
		Status:        "paid",
		OccurredAt:    time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC),
	}

	t.Run("Stamps Paid Payment", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		stamper := NewReceiptStamper(store)

		store.On("StampReceipt", ctx, "res-1", "RCT-20240307-0F1E2D3C").Return(true, nil).Once()

		stamped, err := stamper.Stamp(ctx, event)
		require.NoError(t, err)
		assert.True(t, stamped)
		store.AssertExpectations(t)
	})

	t.Run("Redelivery Keeps First Number", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		stamper := NewReceiptStamper(store)

		store.On("StampReceipt", ctx, "res-1", mock.Anything).Return(false, nil)

		stamped, err := stamper.Stamp(ctx, event)
		require.NoError(t, err)
		assert.False(t, stamped)
	})

	t.Run("Pending Cash Is Ignored", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		stamper := NewReceiptStamper(store)
		pending := event
		pending.Status = "pending"

		stamped, err := stamper.Stamp(ctx, pending)
		require.NoError(t, err)
		assert.False(t, stamped)
		store.AssertNotCalled(t, "StampReceipt", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Store Error", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		stamper := NewReceiptStamper(store)

		store.On("StampReceipt", ctx, "res-1", mock.Anything).Return(false, storage.ErrNotFound)

		_, err := stamper.Stamp(ctx, event)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

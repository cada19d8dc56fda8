package storage

import (
	"context"

	"github.com/chris/apartment-rentals/pkg/models"
)

// PaymentReader defines the interface for reading payments.
type PaymentReader interface {
	// GetPayment retrieves the payment of a reservation.
	GetPayment(ctx context.Context, reservationID string) (*models.Payment, error)

	// ListPayments retrieves the most recent payments.
	ListPayments(ctx context.Context, limit int32) ([]models.Payment, error)
}

// PaymentManager defines the interface for recording payments.
type PaymentManager interface {
	// RecordPayment inserts payment and moves its reservation from one status
	// to another in a single transaction. It fails with ErrDuplicatePayment if
	// the reservation already has a payment.
	RecordPayment(ctx context.Context, payment *models.Payment, from, to models.ReservationStatus) (*models.Payment, error)

	// SettlePayment marks a pending payment paid and moves its reservation from
	// the given status to paid in a single transaction.
	SettlePayment(ctx context.Context, payment *models.Payment, from models.ReservationStatus) (*models.Payment, error)
}

// PaymentStore combines the reader and manager interfaces.
type PaymentStore interface {
	PaymentReader
	PaymentManager
}

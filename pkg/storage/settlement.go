package storage

import (
	"context"
	"time"

	"github.com/chris/apartment-rentals/pkg/models"
)

// SettlementStore defines the privileged operations used by the background
// workers: the reconciliation sweep and the receipt stamper.
type SettlementStore interface {
	// ListSettledPayments returns paid payments older than maxAge.
	ListSettledPayments(ctx context.Context, maxAge time.Duration) ([]models.Payment, error)

	// StampReceipt sets the receipt number of a payment. It returns false if the
	// payment already carried one.
	StampReceipt(ctx context.Context, reservationID, receiptNumber string) (bool, error)
}

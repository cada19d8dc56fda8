package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/queue"
	"github.com/chris/apartment-rentals/pkg/storage"
)

// ReceiptNumber formats the receipt number of a payment:
// RCT-YYYYMMDD-XXXXXXXX, the date being the payment day and the suffix the
// first eight hex digits of the payment id.
func ReceiptNumber(paymentID string, paidAt time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(paymentID, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("RCT-%s-%s", paidAt.UTC().Format("20060102"), suffix)
}

// ReceiptStamper assigns receipt numbers to paid payments as their events
// arrive.
type ReceiptStamper struct {
	store storage.SettlementStore
}

// NewReceiptStamper creates a ReceiptStamper.
func NewReceiptStamper(store storage.SettlementStore) *ReceiptStamper {
	return &ReceiptStamper{store: store}
}

// Stamp stamps the payment named by event. Events for unpaid payments are
// ignored, and a payment that already has a receipt keeps it, so redelivered
// events are harmless. It reports whether a number was written.
func (s *ReceiptStamper) Stamp(ctx context.Context, event queue.PaymentEvent) (bool, error) {
	if event.Status != string(models.PaymentPaid) {
		return false, nil
	}
	if event.PaymentID == "" {
		return false, fmt.Errorf("payment event for reservation %s has no payment id", event.ReservationID)
	}

	number := ReceiptNumber(event.PaymentID, event.OccurredAt)
	stamped, err := s.store.StampReceipt(ctx, event.ReservationID, number)
	if err != nil {
		return false, fmt.Errorf("failed to stamp receipt for reservation %s: %w", event.ReservationID, err)
	}
	if stamped {
		slog.InfoContext(ctx, "stamped receipt", "reservation_id", event.ReservationID, "receipt_number", number)
	}
	return stamped, nil
}

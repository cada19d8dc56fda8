package queue

import (
	"context"
	"time"
)

// EventType names a payment lifecycle event.
type EventType string

const (
	EventPaymentRecorded EventType = "payment.recorded"
	EventPaymentSettled  EventType = "payment.settled"
)

// PaymentEvent is published after a payment change has been committed.
type PaymentEvent struct {
	Type              EventType `json:"type"`
	ReservationID     string    `json:"reservation_id"`
	PaymentID         string    `json:"payment_id"`
	PayerID           string    `json:"payer_id,omitempty"`
	Method            string    `json:"method"`
	Status            string    `json:"status"`
	Amount            int64     `json:"amount"`
	ReservationStatus string    `json:"reservation_status"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// Publisher defines the interface for emitting payment events for asynchronous
// processing.
type Publisher interface {
	PublishPaymentEvent(ctx context.Context, event PaymentEvent) error
}

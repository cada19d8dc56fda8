package websockets

import "time"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeReservationUpdate is sent when a reservation changes status.
	MessageTypeReservationUpdate MessageType = "reservationUpdate"
	// MessageTypePaymentUpdate is sent when a payment is recorded or settled.
	MessageTypePaymentUpdate MessageType = "paymentUpdate"
)

// Message represents a generic WebSocket message. When UserID is set the
// message is only delivered to that user's connections.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
	UserID  string      `json:"-"`
}

// ReservationUpdatePayload is the payload for a reservationUpdate message.
type ReservationUpdatePayload struct {
	ReservationID string    `json:"reservation_id"`
	ListingID     string    `json:"listing_id"`
	RenterID      string    `json:"renter_id"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PaymentUpdatePayload is the payload for a paymentUpdate message.
type PaymentUpdatePayload struct {
	ReservationID     string `json:"reservation_id"`
	PaymentID         string `json:"payment_id"`
	Method            string `json:"method"`
	Status            string `json:"status"`
	Amount            int64  `json:"amount"`
	ReservationStatus string `json:"reservation_status"`
}

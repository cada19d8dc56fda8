package models

import (
	"time"
)

// ReservationStatus defines the possible states of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationPaid      ReservationStatus = "paid"
	ReservationCancelled ReservationStatus = "cancelled"
)

// PaymentStatus defines the possible states of a payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentMethod is how a renter pays for a reservation.
type PaymentMethod string

const (
	// MethodOrangeMoney is the first supported mobile wallet.
	MethodOrangeMoney PaymentMethod = "orange_money"
	// MethodMobileMoney is the second supported mobile wallet.
	MethodMobileMoney PaymentMethod = "mobile_money"
	MethodCash        PaymentMethod = "cash"
	MethodCard        PaymentMethod = "card"
	MethodOther       PaymentMethod = "other"
)

// Role is the coarse permission level of a user.
type Role string

const (
	RoleRenter Role = "renter"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

// DateRange is a booked [Start, End] span kept on the listing item so the
// overlap check and the insert read and write the same record.
type DateRange struct {
	Start time.Time `json:"start" dynamodbav:"start"`
	End   time.Time `json:"end" dynamodbav:"end"`
}

// Listing represents the internal domain model for an apartment.
// It includes dynamodbav tags for marshalling and validate tags for the
// fields a client supplies.
type Listing struct {
	Id          string `dynamodbav:"id"`
	Title       string `dynamodbav:"title" validate:"notblank"`
	Description string `dynamodbav:"description,omitempty"`
	// Price is the monthly rent in whole currency units.
	Price     int64  `dynamodbav:"price" validate:"gte=0"`
	City      string `dynamodbav:"city" validate:"notblank"`
	Address   string `dynamodbav:"address,omitempty"`
	Available bool   `dynamodbav:"available"`
	OwnerId   string `dynamodbav:"owner_id,omitempty"`
	// BookingVersion is bumped by every reservation insert or cancellation.
	BookingVersion int64 `dynamodbav:"booking_version"`
	// BookedRanges holds the ranges of non-cancelled reservations, keyed by
	// reservation id. It must never be nil when written.
	BookedRanges map[string]DateRange `dynamodbav:"booked_ranges"`
	CreatedAt    time.Time            `dynamodbav:"created_at"`
	UpdatedAt    time.Time            `dynamodbav:"updated_at"`
}

// ListingFilter narrows a listing search. Nil fields are ignored.
type ListingFilter struct {
	City      string
	MinPrice  *int64
	MaxPrice  *int64
	Available *bool
}

// Reservation represents the internal domain model for a booking.
type Reservation struct {
	Id         string            `dynamodbav:"id"`
	ListingId  string            `dynamodbav:"listing_id"`
	RenterId   string            `dynamodbav:"renter_id"`
	StartDate  time.Time         `dynamodbav:"start_date"`
	EndDate    time.Time         `dynamodbav:"end_date"`
	TotalPrice int64             `dynamodbav:"total_price"`
	Status     ReservationStatus `dynamodbav:"status"`
	PaymentId  string            `dynamodbav:"payment_id,omitempty"`
	CreatedAt  time.Time         `dynamodbav:"created_at"`
	UpdatedAt  time.Time         `dynamodbav:"updated_at"`
}

// ReservationFilter narrows a reservation listing. Empty fields are ignored.
type ReservationFilter struct {
	RenterId  string
	ListingId string
	Status    ReservationStatus
}

// Payment is the single payment record of a reservation. The payments table
// is keyed by reservation_id, which is what keeps it one-to-one.
type Payment struct {
	ReservationId string        `dynamodbav:"reservation_id"`
	Id            string        `dynamodbav:"id"`
	PayerId       string        `dynamodbav:"payer_id,omitempty"`
	Amount        int64         `dynamodbav:"amount"`
	Method        PaymentMethod `dynamodbav:"method"`
	Status        PaymentStatus `dynamodbav:"status"`
	PaidAt        time.Time     `dynamodbav:"paid_at"`
	ReceiptNumber string        `dynamodbav:"receipt_number,omitempty"`
	GSI1PK        string        `dynamodbav:"gsi1pk"`
}

// User represents a renter, an owner or an administrator.
type User struct {
	Id        string    `json:"id" dynamodbav:"id"`
	FullName  string    `json:"full_name" dynamodbav:"full_name" validate:"notblank"`
	UserName  string    `json:"user_name" dynamodbav:"user_name" validate:"notblank"`
	Email     string    `json:"email" dynamodbav:"email" validate:"required,email"`
	Role      Role      `json:"role" dynamodbav:"role"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

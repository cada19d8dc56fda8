package storage

// ApiStore defines the set of operations needed by the HTTP API.
type ApiStore interface {
	ListingStore
	ReservationStore
	PaymentStore
	UserStore
}

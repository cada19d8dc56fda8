package models

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// daysPerMonth is the divisor used to turn a monthly rent into a per-day rate.
const daysPerMonth = 30

const secondsPerDay = 24 * 60 * 60

// Days returns the number of whole days between start and end. It works on
// Unix seconds because a time.Duration saturates after about 292 years.
func Days(start, end time.Time) int64 {
	return (end.Unix() - start.Unix()) / secondsPerDay
}

// TotalPrice computes round(monthlyPrice * days / 30), halves rounded away
// from zero.
func TotalPrice(monthlyPrice int64, start, end time.Time) int64 {
	days := Days(start, end)
	return int64(math.Round(float64(monthlyPrice) * float64(days) / daysPerMonth))
}

// Overlaps reports whether two ranges share at least one day. Both ends are
// inclusive, so a range ending on the day another begins overlaps it.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// FindOverlap returns the id of the first booked range overlapping candidate.
func (l *Listing) FindOverlap(candidate DateRange) (string, bool) {
	for id, booked := range l.BookedRanges {
		if booked.Overlaps(candidate) {
			return id, true
		}
	}
	return "", false
}

// ExpiredRanges returns, sorted, the ids of booked ranges that ended before
// the day holding now. A range ending today still blocks today.
func (l *Listing) ExpiredRanges(now time.Time) []string {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var ids []string
	for id, booked := range l.BookedRanges {
		if booked.End.Before(today) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// HasActiveRanges reports whether any booked range has not yet ended.
func (l *Listing) HasActiveRanges(now time.Time) bool {
	return len(l.BookedRanges) > len(l.ExpiredRanges(now))
}

// Range returns the reservation's booked range.
func (r *Reservation) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

var transitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationPaid, ReservationCancelled},
	ReservationConfirmed: {ReservationPaid, ReservationCancelled},
}

// CanTransition reports whether a reservation may move from one status to another.
// Nothing leaves cancelled, and paid has no outgoing transition.
func CanTransition(from, to ReservationStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known reservation status.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationPaid, ReservationCancelled:
		return true
	}
	return false
}

// ParsePaymentMethod accepts the canonical method names and a few legacy spellings.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "orange_money", "orange-money", "orange money", "mobile_wallet_a":
		return MethodOrangeMoney, nil
	case "mobile_money", "mtn", "mtn_mobile_money", "mobile_wallet_b":
		return MethodMobileMoney, nil
	case "cash", "especes", "espèces":
		return MethodCash, nil
	case "card", "carte":
		return MethodCard, nil
	case "other", "autre":
		return MethodOther, nil
	}
	return "", fmt.Errorf("unknown payment method %q", raw)
}

// DeriveStatuses returns the payment status and the reservation status a
// payment made with method produces. Cash waits for manual settlement.
func DeriveStatuses(method PaymentMethod) (PaymentStatus, ReservationStatus) {
	if method == MethodCash {
		return PaymentPending, ReservationPending
	}
	return PaymentPaid, ReservationPaid
}

// ParseRole maps a stored or claimed role to a Role. Unknown values are renters.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin", "administrateur":
		return RoleAdmin
	case "owner", "proprietaire", "propriétaire":
		return RoleOwner
	default:
		return RoleRenter
	}
}

// ParseDate parses a calendar date. YYYY-MM-DD is preferred; a full RFC3339
// timestamp is accepted and truncated to its UTC day.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

package booking

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return strings.ToLower(f.Name[:1]) + f.Name[1:]
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Same formats models.ParseDate accepts.
	if err := v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Check runs the validate tags of s and reports the first failing field as
// InvalidInput.
func Check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return InvalidInput("%v", err)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return InvalidInput("%s is required", fe.Field())
	case "email":
		return InvalidInput("%s is invalid", fe.Field())
	case "gte":
		if fe.Param() == "0" {
			return InvalidInput("%s must not be negative", fe.Field())
		}
		return InvalidInput("%s must be at least %s", fe.Field(), fe.Param())
	case "calendardate":
		return InvalidInput("%s: invalid date %q: expected YYYY-MM-DD", fe.Field(), fe.Value())
	}
	return InvalidInput("%s failed %s", fe.Field(), fe.Tag())
}

// CreateReservationInput is the untrusted reservation request. TotalPrice is
// accepted for compatibility and never used.
type CreateReservationInput struct {
	ListingID  string `json:"listingId" validate:"notblank"`
	RenterID   string `json:"renterId" validate:"notblank"`
	StartDate  string `json:"startDate" validate:"notblank,calendardate"`
	EndDate    string `json:"endDate" validate:"notblank,calendardate"`
	TotalPrice *int64 `json:"totalPrice,omitempty"`
}

// ValidReservation is a reservation request that passed validation.
type ValidReservation struct {
	ListingID string
	RenterID  string
	Start     time.Time
	End       time.Time
}

// Range returns the requested booking range.
func (v ValidReservation) Range() models.DateRange {
	return models.DateRange{Start: v.Start, End: v.End}
}

// ValidateReservation checks that every field is present and that the dates
// parse and are ordered.
func ValidateReservation(in CreateReservationInput) (ValidReservation, error) {
	in.ListingID = strings.TrimSpace(in.ListingID)
	in.RenterID = strings.TrimSpace(in.RenterID)
	if err := Check(in); err != nil {
		return ValidReservation{}, err
	}
	start, err := models.ParseDate(in.StartDate)
	if err != nil {
		return ValidReservation{}, InvalidInput("startDate: %v", err)
	}
	end, err := models.ParseDate(in.EndDate)
	if err != nil {
		return ValidReservation{}, InvalidInput("endDate: %v", err)
	}
	if !start.Before(end) {
		return ValidReservation{}, InvalidInput("startDate must be before endDate")
	}
	return ValidReservation{ListingID: in.ListingID, RenterID: in.RenterID, Start: start, End: end}, nil
}

// PayInput is the untrusted payment request. Amount is informational only.
type PayInput struct {
	ReservationID string `json:"reservationId" validate:"notblank"`
	PayerID       string `json:"payerId,omitempty"`
	Method        string `json:"method" validate:"notblank"`
	Amount        *int64 `json:"amount,omitempty"`
}

// ValidPayment is a payment request that passed validation.
type ValidPayment struct {
	ReservationID string
	PayerID       string
	Method        models.PaymentMethod
}

// ValidatePayment checks the reservation id and resolves the payment method.
func ValidatePayment(in PayInput) (ValidPayment, error) {
	in.ReservationID = strings.TrimSpace(in.ReservationID)
	if err := Check(in); err != nil {
		return ValidPayment{}, err
	}
	method, err := models.ParsePaymentMethod(in.Method)
	if err != nil {
		return ValidPayment{}, InvalidInput("%v", err)
	}
	return ValidPayment{
		ReservationID: in.ReservationID,
		PayerID:       strings.TrimSpace(in.PayerID),
		Method:        method,
	}, nil
}

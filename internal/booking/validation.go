package booking

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// Request is what the booking form submits.  VillaName, NightlyPrice and
// TotalPrice are echoed from the page the guest saw; the service trusts
// only the stored villa for pricing.
type Request struct {
	VillaID      string             `json:"villa_id" validate:"required"`
	VillaName    string             `json:"villa_name"`
	NightlyPrice int64              `json:"nightly_price"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	Guests       int                `json:"guests" validate:"min=1"`
	TotalPrice   int64              `json:"total_price,omitempty"`
	Guest        model.GuestDetails `json:"guest"`
}

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError names the first offending field and a message suitable
// for showing next to it.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages maps "<StructField>.<tag>" to the message shown to guests.
var fieldMessages = map[string]string{
	"VillaID.required":  "please select a villa",
	"Guests.min":        "at least one guest is required",
	"FullName.required": "full name is required",
	"FullName.min":      "full name must be at least 3 characters",
	"Email.required":    "email is required",
	"Email.contains":    "please enter a valid email address",
	"Phone.required":    "phone number is required",
	"Phone.min":         "phone number must be at least 8 characters",
}

// Stay is a validated date range.
type Stay struct {
	Start  time.Time
	End    time.Time
	Nights int
}

// ValidateStay parses the dates and rejects ranges shorter than one night.
// It runs before anything touches the store.
func ValidateStay(startDate, endDate string) (Stay, error) {
	start, err := ParseDay(startDate)
	if err != nil {
		return Stay{}, &ValidationError{Field: "start_date", Message: "please choose a valid check-in date"}
	}
	end, err := ParseDay(endDate)
	if err != nil {
		return Stay{}, &ValidationError{Field: "end_date", Message: "please choose a valid check-out date"}
	}
	nights := Nights(start, end)
	if nights < 1 {
		return Stay{}, &ValidationError{Field: "end_date", Message: "check-out must be at least one night after check-in"}
	}
	return Stay{Start: start, End: end, Nights: nights}, nil
}

// ValidateGuest applies the contact rules on their own, for flows such as
// inquiries that carry no stay.
func ValidateGuest(g model.GuestDetails) error {
	g = NormalizeGuest(g)
	return translate(validate.Struct(g), "guest.")
}

// ValidateRequest checks the stay first and then the remaining fields,
// returning the first failure.
func ValidateRequest(req Request) (Stay, error) {
	stay, err := ValidateStay(req.StartDate, req.EndDate)
	if err != nil {
		return Stay{}, err
	}
	req.Guest = NormalizeGuest(req.Guest)
	req.VillaID = strings.TrimSpace(req.VillaID)
	if err := translate(validate.Struct(req), ""); err != nil {
		return Stay{}, err
	}
	return stay, nil
}

// NormalizeGuest trims whitespace and lower-cases the email.
func NormalizeGuest(g model.GuestDetails) model.GuestDetails {
	g.FullName = strings.TrimSpace(g.FullName)
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	g.Phone = strings.TrimSpace(g.Phone)
	g.SpecialRequest = strings.TrimSpace(g.SpecialRequest)
	return g
}

func translate(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &ValidationError{Field: "request", Message: "invalid request"}
	}
	fe := errs[0]
	field := fe.Namespace()
	// drop the root struct name ("Request." / "GuestDetails.")
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	msg, ok := fieldMessages[fe.StructField()+"."+fe.Tag()]
	if !ok {
		msg = "invalid value"
	}
	return &ValidationError{Field: prefix + field, Message: msg}
}

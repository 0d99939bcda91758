package model

import "time"

// BookingStatus enumerates the lifecycle of a reservation request.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Blocking reports whether a booking in this status occupies the villa.
// Only pending and confirmed bookings do.
func (s BookingStatus) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking mirrors a row in the `bookings` table.  StartDate and EndDate are
// the raw ISO-8601 strings as stored; callers parse them per row.
type Booking struct {
	ID             string        `json:"id"`              // bookings.id
	VillaID        string        `json:"villa_id"`        // bookings.villa_id
	StartDate      string        `json:"start_date"`      // bookings.start_date
	EndDate        string        `json:"end_date"`        // bookings.end_date
	TotalPrice     int64         `json:"total_price"`     // bookings.total_price (IDR)
	Status         BookingStatus `json:"status"`          // bookings.status
	GuestName      string        `json:"guest_name"`      // bookings.guest_name
	GuestEmail     string        `json:"guest_email"`     // bookings.guest_email
	GuestWhatsApp  string        `json:"guest_whatsapp"`  // bookings.guest_whatsapp
	SpecialRequest *string       `json:"special_request"` // bookings.special_request (nullable)
	CreatedAt      time.Time     `json:"created_at"`      // bookings.created_at
}

// GuestDetails is the contact block a guest fills in on the booking form.
type GuestDetails struct {
	FullName       string `json:"full_name" validate:"required,min=3"`
	Email          string `json:"email" validate:"required,contains=@"`
	Phone          string `json:"phone" validate:"required,min=8"`
	SpecialRequest string `json:"special_request,omitempty"`
}

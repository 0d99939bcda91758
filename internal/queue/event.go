// Package queue defines message payloads exchanged over the message broker
// and the consumer that reacts to them.
package queue

// BookingCreatedQueue is the durable queue carrying BookingCreatedEvent.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published after a pending booking has been stored.
// It carries everything the notification side channel needs (guest email,
// admin push) so consumers never query the database.
type BookingCreatedEvent struct {
	BookingID      string `json:"booking_id"`
	Reference      string `json:"reference"`
	VillaID        string `json:"villa_id"`
	VillaName      string `json:"villa_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Nights         int    `json:"nights"`
	Guests         int    `json:"guests"`
	TotalPrice     int64  `json:"total_price"`
	FormattedTotal string `json:"formatted_total"`
	GuestName      string `json:"guest_name"`
	GuestEmail     string `json:"guest_email"`
	GuestPhone     string `json:"guest_phone"`
	SpecialRequest string `json:"special_request,omitempty"`
	CreatedAt      string `json:"created_at"`
}

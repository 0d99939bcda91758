package booking

import (
	"fmt"
	"net/url"
	"strings"
)

// MessageData is everything the hand-off message mentions.
type MessageData struct {
	VillaName string
	Stay      Stay
	Guests    int
	Total     int64
	Guest     GuestContact
	Reference string
}

// GuestContact is the subset of guest details printed in the message.
type GuestContact struct {
	FullName       string
	Email          string
	Phone          string
	SpecialRequest string
}

// displayDate is day-month-year, as guests in Bali expect.
const displayDate = "02/01/2006"

// ComposeMessage renders the fixed multi-line booking message.
func ComposeMessage(d MessageData) string {
	var b strings.Builder
	b.WriteString("Hello, I would like to book a villa.\n\n")
	fmt.Fprintf(&b, "Villa: %s\n", d.VillaName)
	fmt.Fprintf(&b, "Check-in: %s\n", d.Stay.Start.Format(displayDate))
	fmt.Fprintf(&b, "Check-out: %s\n", d.Stay.End.Format(displayDate))
	fmt.Fprintf(&b, "Nights: %d\n", d.Stay.Nights)
	fmt.Fprintf(&b, "Guests: %d\n", d.Guests)
	fmt.Fprintf(&b, "Total: %s\n\n", FormatIDR(d.Total))
	fmt.Fprintf(&b, "Name: %s\n", d.Guest.FullName)
	fmt.Fprintf(&b, "Email: %s\n", d.Guest.Email)
	fmt.Fprintf(&b, "WhatsApp: %s\n", d.Guest.Phone)
	if d.Guest.SpecialRequest != "" {
		fmt.Fprintf(&b, "Special request: %s\n", d.Guest.SpecialRequest)
	}
	fmt.Fprintf(&b, "\nBooking reference: %s", d.Reference)
	return b.String()
}

// WhatsAppLink builds https://wa.me/<number>?text=<message>.  Non-digits
// are stripped from the number; spaces are encoded as %20.
func WhatsAppLink(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text
}

// ReferenceCode is the short code shown to guests: the first eight
// characters of the booking id, upper-cased.
func ReferenceCode(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

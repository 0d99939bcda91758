package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ServiceFeePercent is added on top of the nightly subtotal of every stay.
const ServiceFeePercent = 10

// Nights counts whole calendar days between check-in and check-out.
func Nights(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}

// Quote is the price breakdown of a stay, in whole rupiah.
type Quote struct {
	Nights       int   `json:"nights"`
	NightlyPrice int64 `json:"nightly_price"`
	Subtotal     int64 `json:"subtotal"`
	ServiceFee   int64 `json:"service_fee"`
	Total        int64 `json:"total"`
}

// NewQuote prices a stay: total = nights × rate × 1.10, rounded half up to
// the nearest rupiah.  Integer arithmetic keeps the result exact.
func NewQuote(nights int, nightlyPrice int64) Quote {
	subtotal := int64(nights) * nightlyPrice
	total := (subtotal*(100+ServiceFeePercent) + 50) / 100
	return Quote{
		Nights:       nights,
		NightlyPrice: nightlyPrice,
		Subtotal:     subtotal,
		ServiceFee:   total - subtotal,
		Total:        total,
	}
}

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount the Indonesian way: "Rp 11.550.000".
func FormatIDR(amount int64) string {
	if amount < 0 {
		return "-Rp " + idPrinter.Sprintf("%d", -amount)
	}
	return "Rp " + idPrinter.Sprintf("%d", amount)
}

// ParseIDR reverses FormatIDR.
func ParseIDR(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSpace(strings.TrimPrefix(s, "Rp"))
	s = strings.ReplaceAll(s, ".", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rupiah amount: %w", err)
	}
	if neg {
		n = -n
	}
	return n, nil
}

// Package booking holds the reservation rules of the villa site: the
// availability calendar, the overlap check, pricing, guest validation and
// the submission flow that ends in a WhatsApp hand-off.
package booking

import (
	"fmt"
	"strings"
	"time"
)

// accepted layouts, most specific first
var dayLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDay parses an ISO-8601 date or date-time and truncates it to its
// calendar day.  The day is taken in the value's own offset, so
// "2026-03-10T23:00:00+08:00" is March 10th.  The result is midnight UTC.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Day returns midnight UTC of t's calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a day as YYYY-MM-DD, the format used on the wire.
func FormatDay(t time.Time) string { return t.Format("2006-01-02") }

package booking

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// Overlaps is the half-open interval test used for conflict detection:
// [aStart, aEnd) and [bStart, bEnd) conflict iff aStart < bEnd && aEnd > bStart.
// A stay that ends on day D never conflicts with one starting on day D.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// BlockedDates expands every pending or confirmed booking into the calendar
// days it touches, check-in through check-out inclusive.  The checkout day
// is blocked here on purpose; the overlap test still allows same-day
// turnover.  Bookings with unparseable dates are skipped with a warning.
// Duplicates are kept; callers only test membership.
func BlockedDates(bookings []model.Booking, log logrus.FieldLogger) []time.Time {
	var out []time.Time
	for _, b := range bookings {
		if !b.Status.Blocking() {
			continue
		}
		start, err := ParseDay(b.StartDate)
		if err != nil {
			warnSkip(log, b, err)
			continue
		}
		end, err := ParseDay(b.EndDate)
		if err != nil {
			warnSkip(log, b, err)
			continue
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			out = append(out, d)
		}
	}
	return out
}

func warnSkip(log logrus.FieldLogger, b model.Booking, err error) {
	if log == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"villa_id":   b.VillaID,
	}).WithError(err).Warn("skipping booking with malformed dates")
}

// UniqueDays sorts days and drops duplicates.
func UniqueDays(days []time.Time) []time.Time {
	if len(days) == 0 {
		return []time.Time{}
	}
	cp := make([]time.Time, len(days))
	copy(cp, days)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Before(cp[j]) })
	out := cp[:1]
	for _, d := range cp[1:] {
		if !d.Equal(out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return out
}

// FindConflict returns the first pending or confirmed booking whose stay
// overlaps [start, end).  Rows with malformed dates cannot be compared and
// are ignored.
func FindConflict(existing []model.Booking, start, end time.Time) (model.Booking, bool) {
	for _, b := range existing {
		if !b.Status.Blocking() {
			continue
		}
		bs, err := ParseDay(b.StartDate)
		if err != nil {
			continue
		}
		be, err := ParseDay(b.EndDate)
		if err != nil {
			continue
		}
		if Overlaps(bs, be, start, end) {
			return b, true
		}
	}
	return model.Booking{}, false
}

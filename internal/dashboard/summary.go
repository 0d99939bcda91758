// Package dashboard aggregates bookings for the admin overview.
package dashboard

import (
	"sort"

	"github.com/iliyamo/bali-villa-booking/internal/booking"
	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// MonthRevenue is the earned revenue of one calendar month (YYYY-MM of the
// check-in date).
type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// Summary is the dashboard headline.
type Summary struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	Revenue        int64          `json:"revenue"`
	RevenueDisplay string         `json:"revenue_display"`
	PendingValue   int64          `json:"pending_value"`
	Monthly        []MonthRevenue `json:"monthly"`
}

// Summarize counts bookings per status and sums revenue.  Confirmed and
// completed bookings count as revenue; pending ones are reported separately
// as pipeline value.  Bookings with an unparseable check-in still count in
// the totals but are left out of the monthly series.
func Summarize(bookings []model.Booking) Summary {
	s := Summary{
		ByStatus: map[string]int{
			string(model.StatusPending):   0,
			string(model.StatusConfirmed): 0,
			string(model.StatusCancelled): 0,
			string(model.StatusCompleted): 0,
		},
		Monthly: []MonthRevenue{},
	}
	months := map[string]int64{}
	for _, b := range bookings {
		s.Total++
		s.ByStatus[string(b.Status)]++
		switch b.Status {
		case model.StatusConfirmed, model.StatusCompleted:
			s.Revenue += b.TotalPrice
			if d, err := booking.ParseDay(b.StartDate); err == nil {
				months[d.Format("2006-01")] += b.TotalPrice
			}
		case model.StatusPending:
			s.PendingValue += b.TotalPrice
		}
	}
	for m, v := range months {
		s.Monthly = append(s.Monthly, MonthRevenue{Month: m, Revenue: v})
	}
	sort.Slice(s.Monthly, func(i, j int) bool { return s.Monthly[i].Month < s.Monthly[j].Month })
	s.RevenueDisplay = booking.FormatIDR(s.Revenue)
	return s
}

package handler_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bali-villa-booking/internal/booking"
	"github.com/iliyamo/bali-villa-booking/internal/datasource"
	"github.com/iliyamo/bali-villa-booking/internal/handler"
	"github.com/iliyamo/bali-villa-booking/internal/logging"
)

func bookingServer() *echo.Echo {
	svc := booking.NewService(datasource.NewFallback(0), nil, "+62 812-3456-7890", logging.Discard())
	b := handler.NewBookingHandler(svc)
	e := echo.New()
	e.GET("/api/villas/:id/blocked-dates", b.BlockedDates)
	e.GET("/api/villas/:id/availability", b.Availability)
	e.POST("/api/bookings", b.Create)
	return e
}

// day returns today plus n days as YYYY-MM-DD, matching the fallback
// calendar which is anchored on today.
func day(n int) string {
	return booking.FormatDay(booking.Day(time.Now()).AddDate(0, 0, n))
}

func TestBlockedDates(t *testing.T) {
	var body struct {
		VillaID string   `json:"villa_id"`
		Blocked []string `json:"blocked_dates"`
	}
	rec := do(t, bookingServer(), http.MethodGet, "/api/villas/royal-jungle-suite/blocked-dates", "")
	wantStatus(t, rec, http.StatusOK)
	decode(t, rec, &body)

	// {3..6} and {14..18}, check-out days included
	if len(body.Blocked) != 9 {
		t.Fatalf("blocked = %v", body.Blocked)
	}
	if body.Blocked[0] != day(3) || body.Blocked[3] != day(6) || body.Blocked[8] != day(18) {
		t.Fatalf("blocked = %v", body.Blocked)
	}
}

func TestAvailability(t *testing.T) {
	e := bookingServer()
	cases := []struct {
		name       string
		villa      string
		start, end string
		status     int
		available  bool
	}{
		{"overlapping", "royal-jungle-suite", day(4), day(8), http.StatusOK, false},
		{"turnover day", "royal-jungle-suite", day(6), day(9), http.StatusOK, true},
		{"free", "royal-jungle-suite", day(7), day(10), http.StatusOK, true},
		{"bad dates", "royal-jungle-suite", "soon", day(10), http.StatusBadRequest, false},
		{"zero nights", "royal-jungle-suite", day(8), day(8), http.StatusBadRequest, false},
		{"unknown villa", "nope", day(7), day(10), http.StatusNotFound, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := fmt.Sprintf("/api/villas/%s/availability?start=%s&end=%s", tc.villa, tc.start, tc.end)
			rec := do(t, e, http.MethodGet, path, "")
			wantStatus(t, rec, tc.status)
			if tc.status != http.StatusOK {
				return
			}
			var av booking.Availability
			decode(t, rec, &av)
			if av.Available != tc.available {
				t.Fatalf("available = %v, want %v", av.Available, tc.available)
			}
			if av.Available && av.Quote == nil {
				t.Fatal("free stay without quote")
			}
		})
	}
}

func bookingBody(villa, start, end, name string) string {
	return fmt.Sprintf(`{
		"villa_id": %q,
		"villa_name": "Royal Jungle Suite",
		"nightly_price": 3500000,
		"start_date": %q,
		"end_date": %q,
		"guests": 2,
		"guest": {"full_name": %q, "email": "Ayu@Example.com", "phone": "+6281234567"}
	}`, villa, start, end, name)
}

func TestCreateBooking(t *testing.T) {
	e := bookingServer()

	var ok booking.Result
	rec := do(t, e, http.MethodPost, "/api/bookings", bookingBody("royal-jungle-suite", day(7), day(10), "Ayu Lestari"))
	wantStatus(t, rec, http.StatusCreated)
	decode(t, rec, &ok)
	if !ok.Success || len(ok.Reference) != 8 || ok.BookingID == "" {
		t.Fatalf("result = %+v", ok)
	}
	if ok.FormattedTotal != "Rp 11.550.000" {
		t.Fatalf("formatted total = %q", ok.FormattedTotal)
	}
	if !strings.HasPrefix(ok.WhatsAppURL, "https://wa.me/6281234567890?text=") {
		t.Fatalf("whatsapp url = %q", ok.WhatsAppURL)
	}

	cases := []struct {
		name   string
		body   string
		status int
		code   string
		field  string
	}{
		{"overlap", bookingBody("royal-jungle-suite", day(4), day(8), "Ayu Lestari"), http.StatusConflict, booking.CodeConflict, ""},
		{"short name", bookingBody("royal-jungle-suite", day(7), day(10), "Al"), http.StatusBadRequest, booking.CodeValidation, "guest.full_name"},
		{"reversed dates", bookingBody("royal-jungle-suite", day(10), day(7), "Ayu Lestari"), http.StatusBadRequest, booking.CodeValidation, "end_date"},
		{"unknown villa", bookingBody("nope", day(7), day(10), "Ayu Lestari"), http.StatusNotFound, booking.CodeNotFound, ""},
		{"malformed json", `{"villa_id":`, http.StatusBadRequest, booking.CodeValidation, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var res booking.Result
			rec := do(t, e, http.MethodPost, "/api/bookings", tc.body)
			wantStatus(t, rec, tc.status)
			decode(t, rec, &res)
			if res.Success || res.Code != tc.code || res.Field != tc.field {
				t.Fatalf("result = %+v", res)
			}
			if res.Error == "" {
				t.Fatal("failure without message")
			}
		})
	}
}

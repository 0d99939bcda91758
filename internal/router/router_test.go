package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bali-villa-booking/internal/booking"
	"github.com/iliyamo/bali-villa-booking/internal/config"
	"github.com/iliyamo/bali-villa-booking/internal/datasource"
	"github.com/iliyamo/bali-villa-booking/internal/handler"
	"github.com/iliyamo/bali-villa-booking/internal/logging"
	"github.com/iliyamo/bali-villa-booking/internal/middleware"
)

func newServer() *echo.Echo {
	log := logging.Discard()
	src := datasource.NewFallback(0)
	pass := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	e := echo.New()
	RegisterRoutes(e, &handler.StatusHandler{Mode: datasource.NameFallback})
	api := e.Group("/api", middleware.DataSourceHeader())
	RegisterPublic(api, handler.NewPublicHandler(src, log), pass)
	RegisterBooking(api, handler.NewBookingHandler(booking.NewService(src, nil, "6281234567890", log)), pass)
	RegisterContact(api, handler.NewContactHandler(src, nil, log), pass)
	RegisterAdmin(api.Group("/admin"), AdminHandlers{
		Auth:      handler.NewAuthHandler(config.Config{JWTSecret: "s"}, nil, nil, log),
		Dashboard: handler.NewDashboardHandler(nil, log),
		Push:      handler.NewPushHandler(nil, log),
	}, "s", pass)
	return e
}

func TestRoutes(t *testing.T) {
	e := newServer()
	cases := []struct {
		method, path string
		status       int
		source       string
	}{
		{http.MethodGet, "/healthz", http.StatusOK, ""},
		{http.MethodGet, "/api/status", http.StatusOK, ""},
		{http.MethodGet, "/api/villas", http.StatusOK, datasource.NameFallback},
		{http.MethodGet, "/api/villas/map", http.StatusOK, datasource.NameFallback},
		{http.MethodGet, "/api/villas/royal-jungle-suite", http.StatusOK, datasource.NameFallback},
		{http.MethodGet, "/api/villas/royal-jungle-suite/blocked-dates", http.StatusOK, datasource.NameFallback},
		{http.MethodGet, "/api/reviews", http.StatusOK, datasource.NameFallback},
		{http.MethodGet, "/api/admin/bookings", http.StatusUnauthorized, "live"},
		{http.MethodGet, "/api/admin/summary", http.StatusUnauthorized, "live"},
		{http.MethodGet, "/api/nothing-here", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.source != "" {
				if got := rec.Header().Get(middleware.HeaderDataSource); got != tc.source {
					t.Fatalf("%s = %q, want %q", middleware.HeaderDataSource, got, tc.source)
				}
			}
		})
	}
}

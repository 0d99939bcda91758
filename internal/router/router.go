// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bali-villa-booking/internal/handler"
	"github.com/iliyamo/bali-villa-booking/internal/middleware"
	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// RegisterRoutes registers the unauthenticated probes.
func RegisterRoutes(e *echo.Echo, s *handler.StatusHandler) {
	e.GET("/healthz", handler.Health)
	if s != nil {
		e.GET("/api/status", s.Status)
	}
}

// RegisterPublic registers the catalog and editorial reads.  cache wraps
// the content routes only.
func RegisterPublic(g *echo.Group, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g.GET("/villas", p.ListVillas, cache)
	g.GET("/villas/map", p.MapMarkers, cache)
	g.GET("/villas/:id", p.GetVilla, cache)
	g.GET("/journal", p.ListJournal, cache)
	g.GET("/journal/:slug", p.GetJournal, cache)
	g.GET("/experiences", p.ListExperiences, cache)
	g.GET("/reviews", p.ListReviews, cache)
}

// RegisterBooking registers availability and booking routes.  They are
// never cached; writes go through limit.
func RegisterBooking(g *echo.Group, b *handler.BookingHandler, limit echo.MiddlewareFunc) {
	g.GET("/villas/:id/blocked-dates", b.BlockedDates)
	g.GET("/villas/:id/availability", b.Availability)
	g.POST("/bookings", b.Create, limit)
}

// RegisterContact registers newsletter and email routes behind limit.
func RegisterContact(g *echo.Group, h *handler.ContactHandler, limit echo.MiddlewareFunc) {
	g.POST("/subscribe", h.Subscribe, limit)
	g.POST("/email", h.SendEmail, limit)
}

// AdminHandlers groups the dashboard handlers.
type AdminHandlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Push      *handler.PushHandler
}

// RegisterAdmin registers /api/admin.  Login, refresh and logout are open
// (logout authenticates through the refresh token); everything else
// requires an ADMIN access token.
func RegisterAdmin(g *echo.Group, h AdminHandlers, jwtSecret string, limit echo.MiddlewareFunc) {
	auth := g.Group("/auth")
	auth.POST("/login", h.Auth.Login, limit)
	auth.POST("/refresh", h.Auth.Refresh, limit)
	auth.POST("/logout", h.Auth.Logout)

	protected := g.Group("", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	protected.GET("/me", h.Auth.Me)
	protected.GET("/bookings", h.Dashboard.ListBookings)
	protected.GET("/summary", h.Dashboard.Summary)
	protected.POST("/push/subscribe", h.Push.Subscribe)
	protected.POST("/push/send", h.Push.Send)
}

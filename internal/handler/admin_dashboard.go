package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bali-villa-booking/internal/dashboard"
	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// BookingLister is implemented by *repository.BookingRepo.
type BookingLister interface {
	ListAll(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
}

// DashboardHandler serves the admin booking views.
type DashboardHandler struct {
	Bookings BookingLister
	Log      logrus.FieldLogger
}

func NewDashboardHandler(b BookingLister, log logrus.FieldLogger) *DashboardHandler {
	return &DashboardHandler{Bookings: b, Log: log}
}

// ListBookings handles GET /api/admin/bookings?status=.
func (h *DashboardHandler) ListBookings(c echo.Context) error {
	status := model.BookingStatus(strings.ToLower(strings.TrimSpace(c.QueryParam("status"))))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	list, err := h.Bookings.ListAll(c.Request().Context(), status)
	if err != nil {
		h.Log.WithError(err).Error("list bookings failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list, "count": len(list)})
}

// Summary handles GET /api/admin/summary.
func (h *DashboardHandler) Summary(c echo.Context) error {
	list, err := h.Bookings.ListAll(c.Request().Context(), "")
	if err != nil {
		h.Log.WithError(err).Error("load bookings for summary failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, dashboard.Summarize(list))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bali-villa-booking/internal/booking"
	"github.com/iliyamo/bali-villa-booking/internal/repository"
)

// BookingHandler exposes availability and booking submission.
type BookingHandler struct {
	Service *booking.Service
}

func NewBookingHandler(s *booking.Service) *BookingHandler { return &BookingHandler{Service: s} }

// BlockedDates handles GET /api/villas/:id/blocked-dates.  Dates are
// YYYY-MM-DD, sorted and unique.
func (h *BookingHandler) BlockedDates(c echo.Context) error {
	villaID := c.Param("id")
	days, err := h.Service.BlockedDates(c.Request().Context(), villaID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load availability"})
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, booking.FormatDay(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"villa_id": villaID, "blocked_dates": out})
}

// Availability handles GET /api/villas/:id/availability?start=&end=.
func (h *BookingHandler) Availability(c echo.Context) error {
	av, err := h.Service.CheckAvailability(c.Request().Context(), c.Param("id"), c.QueryParam("start"), c.QueryParam("end"))
	var ve *booking.ValidationError
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, av)
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "villa not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
}

// resultStatus maps result codes to HTTP statuses.  The body is always the
// discriminated result.
var resultStatus = map[string]int{
	booking.CodeValidation:     http.StatusBadRequest,
	booking.CodeConflict:       http.StatusConflict,
	booking.CodeNotFound:       http.StatusNotFound,
	booking.CodeInfrastructure: http.StatusInternalServerError,
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	var req booking.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, booking.Result{
			Success: false,
			Error:   "invalid request body",
			Code:    booking.CodeValidation,
		})
	}
	res := h.Service.Submit(c.Request().Context(), req)
	if res.Success {
		return c.JSON(http.StatusCreated, res)
	}
	status, ok := resultStatus[res.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, res)
}

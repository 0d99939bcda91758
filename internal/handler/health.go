package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe; it answers "ok" with 200.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// StatusHandler reports which data source answers public reads.  Circuit,
// when set, returns the store circuit breaker state.
type StatusHandler struct {
	Mode    string
	Circuit func() string
}

// Status returns {"data_source": "...", "circuit": "..."}.
func (h *StatusHandler) Status(c echo.Context) error {
	resp := echo.Map{"status": "ok", "data_source": h.Mode}
	if h.Circuit != nil {
		resp["circuit"] = h.Circuit()
	}
	return c.JSON(http.StatusOK, resp)
}

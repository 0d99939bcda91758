package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// AdminID returns the authenticated admin id stored by JWTAuth.
func AdminID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	return id, ok && id > 0
}

// clientKey identifies the caller for rate limiting: the admin id when
// authenticated, the client IP otherwise.
func clientKey(c echo.Context) string {
	if id, ok := AdminID(c); ok {
		return "admin:" + strconv.FormatUint(id, 10)
	}
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

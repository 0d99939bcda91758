package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bali-villa-booking/internal/datasource"
)

// HeaderDataSource tells the site whether the response came from the live
// store or the fallback dataset.
const HeaderDataSource = "X-Data-Source"

// DataSourceHeader attaches a datasource.Trace to the request context and
// writes X-Data-Source just before the response headers go out.
func DataSourceHeader() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, trace := datasource.WithTrace(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Before(func() {
				if c.Response().Header().Get(HeaderDataSource) == "" {
					c.Response().Header().Set(HeaderDataSource, trace.Name())
				}
			})
			return next(c)
		}
	}
}

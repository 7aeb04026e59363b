package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestDeadline bounds the request context to d. Store calls made with the
// request context inherit the bound; d <= 0 disables it.
func RequestDeadline(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d <= 0 {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

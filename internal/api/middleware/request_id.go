package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/promoplay/playgate/internal/core/domain"
)

// AttachRequestID is an echomiddleware.RequestIDConfig.RequestIDHandler that
// copies the request id into the request context for the core services.
func AttachRequestID(c echo.Context, id string) {
	req := c.Request()
	c.SetRequest(req.WithContext(domain.WithRequestID(req.Context(), id)))
}

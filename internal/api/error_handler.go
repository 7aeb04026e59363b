package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/promoplay/playgate/internal/core/domain"
)

// statusClientClosedRequest is the non-standard status logged when the
// client went away before the request finished.
const statusClientClosedRequest = 499

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally; the cause reaches the client only when exposeDetails is set.
//   - Renders a consistent JSON envelope: {"success": false, "message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, exposeDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		resp := errorResponse{Success: false, Message: msg}
		if exposeDetails && code >= http.StatusInternalServerError {
			resp.Error = err.Error()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch domain.KindOf(err) {
	case domain.KindCanceled:
		logFailure(log.Debug(), err, c, "client closed request")
		return statusClientClosedRequest, "Request canceled"
	case domain.KindInvalidArgument:
		return http.StatusBadRequest, "Invalid phone number format. Must be 10-15 digits."
	case domain.KindNotFound:
		return http.StatusNotFound, "User not found"
	case domain.KindConflict:
		return http.StatusConflict, "User already exists"
	case domain.KindTimeout:
		logFailure(log.Warn(), err, c, "store operation timed out")
		return http.StatusGatewayTimeout, "Request timeout"
	case domain.KindUnavailable:
		logFailure(log.Warn(), err, c, "store unavailable")
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	logFailure(log.Error(), err, c, "unhandled error")
	return http.StatusInternalServerError, "Server error while processing request"
}

func logFailure(ev *zerolog.Event, err error, c echo.Context, msg string) {
	ev.Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(msg)
}

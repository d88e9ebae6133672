package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FromContext returns the request-scoped logger installed by the
// request ID middleware. Outside a middleware-wrapped request (tests,
// mostly) it falls back to the process logger, tagged with whatever
// request ID the caller supplied.
func FromContext(c echo.Context) *zap.Logger {
	if log, ok := c.Get("logger").(*zap.Logger); ok {
		return log
	}

	if requestID := c.Request().Header.Get(echo.HeaderXRequestID); requestID != "" {
		return GetLogger().With(zap.String("request_id", requestID))
	}
	return GetLogger()
}

package middleware

import (
	"hanouti-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDMiddleware tags every request with an ID and stashes a
// child logger carrying it in the context. An inbound X-Request-ID
// set by the storefront proxy is kept so one customer action can be
// traced end to end; otherwise a fresh uuid is issued.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Response().Header().Set(echo.HeaderXRequestID, requestID)
		c.Set("request_id", requestID)
		c.Set("logger", logger.GetLogger().With(zap.String("request_id", requestID)))

		return next(c)
	}
}

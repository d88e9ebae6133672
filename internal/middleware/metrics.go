package middleware

import (
	"strconv"
	"time"

	"hanouti-api/prometheus"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request count and latency per route.
// Prometheus scrapes and load-balancer health checks are skipped so
// they don't dominate the series.
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Path()
		if path == "/metrics" || path == "/health" {
			return next(c)
		}

		start := time.Now()
		err := next(c)

		method := c.Request().Method
		status := strconv.Itoa(c.Response().Status)
		prometheus.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		prometheus.HttpRequestDuration.WithLabelValues(method, path, status).
			Observe(time.Since(start).Seconds())

		return err
	}
}

package middleware

import (
	"plantnet/pkg/metrics"
	"time"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records per-route request latency.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			metrics.HTTPRequestLatency.
				WithLabelValues(c.Request().Method, c.Path()).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}

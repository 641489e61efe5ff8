package middleware

import (
	"time"

	"eshop_backend/internal/metrics"

	"github.com/gofiber/fiber/v3"
)

// MetricsMiddleware ghi số request và thời gian xử lý theo route pattern
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := "unmatched"
		if route := c.Route(); route != nil && route.Path != "" {
			path = route.Path
		}
		metrics.ObserveHTTP(c.Method(), path, status, time.Since(start))
		return err
	}
}

package middleware

import "github.com/gofiber/fiber/v3"

// SecurityHeaders set các header bảo mật cơ bản cho mọi response
func SecurityHeaders() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-XSS-Protection", "0")
		return c.Next()
	}
}

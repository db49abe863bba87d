package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP derives the submitter address for rate limiting and audit. Behind
// a proxy the first X-Forwarded-For entry is the client; X-Real-IP is the
// fallback. "unknown" keys requests that carry neither.
func ClientIP(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return "unknown"
}

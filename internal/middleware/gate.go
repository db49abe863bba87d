package middleware

import (
	"net/url"

	"github.com/complaintbox/backend/internal/config"
	"github.com/gofiber/fiber/v2"
)

const (
	// GateCookie carries the access secret after a one-time token exchange.
	GateCookie = "complaint_access"
	// GateHeader lets the intake API accept the secret directly.
	GateHeader = "X-Complaint-Access"

	gateQueryParam = "t"
	gateCookieAge  = 7 * 24 * 60 * 60 // seconds
)

// ComplaintGate protects the public complaint form. A matching token in the
// query string is exchanged for an httpOnly cookie and stripped from the URL;
// a matching cookie passes directly. Anything else bounces to the site root.
// With no secret configured the gate is inert.
func ComplaintGate(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := cfg.ComplaintAccessToken
		if secret == "" {
			return c.Next()
		}

		if c.Cookies(GateCookie) == secret {
			return c.Next()
		}

		if c.Query(gateQueryParam) == secret {
			c.Cookie(&fiber.Cookie{
				Name:     GateCookie,
				Value:    secret,
				Path:     "/",
				MaxAge:   gateCookieAge,
				HTTPOnly: true,
				Secure:   cfg.IsProduction(),
				SameSite: fiber.CookieSameSiteLaxMode,
			})
			return c.Redirect(cleanURL(c), fiber.StatusFound)
		}

		return c.Redirect("/", fiber.StatusFound)
	}
}

// cleanURL rebuilds the request URL with the token parameter removed.
func cleanURL(c *fiber.Ctx) string {
	values := url.Values{}
	for key, vals := range c.Queries() {
		if key == gateQueryParam {
			continue
		}
		values.Set(key, vals)
	}
	if encoded := values.Encode(); encoded != "" {
		return c.Path() + "?" + encoded
	}
	return c.Path()
}

// GatePassed reports whether an API request carries the access secret via
// cookie or header. Always true when no secret is configured.
func GatePassed(c *fiber.Ctx, cfg *config.Config) bool {
	secret := cfg.ComplaintAccessToken
	if secret == "" {
		return true
	}
	return c.Cookies(GateCookie) == secret || c.Get(GateHeader) == secret
}

package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/complaintbox/backend/internal/middleware"
	"github.com/complaintbox/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roleApp simulates a verified session: the JWT middleware would have parsed
// the token into context locals before RequireRole runs.
func roleApp(claims jwt.MapClaims) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if claims != nil {
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	app.Delete("/complaints/x", middleware.RequireRole(models.RoleSuperAdmin), func(c *fiber.Ctx) error {
		return c.SendString("deleted")
	})
	return app
}

func TestRequireRole_SuperAdminPasses(t *testing.T) {
	app := roleApp(jwt.MapClaims{
		"sub":      uuid.NewString(),
		"username": "root",
		"role":     models.RoleSuperAdmin,
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/complaints/x", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_PlainAdminRejectedWithDistinctMessage(t *testing.T) {
	app := roleApp(jwt.MapClaims{
		"sub":      uuid.NewString(),
		"username": "mod",
		"role":     models.RoleAdmin,
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/complaints/x", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "Unauthorized - Super admin access required", payload["error"])
}

func TestRequireRole_NoSessionRejected(t *testing.T) {
	app := roleApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/complaints/x", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCurrentSession_SurfacesIdentity(t *testing.T) {
	id := uuid.New()
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{
			"sub":      id.String(),
			"username": "mod",
			"role":     models.RoleAdmin,
		}})
		session, err := middleware.CurrentSession(c)
		require.NoError(t, err)
		assert.Equal(t, id, session.ID)
		assert.Equal(t, "mod", session.Username)
		assert.Equal(t, models.RoleAdmin, session.Role)
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

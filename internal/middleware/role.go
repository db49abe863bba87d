package middleware

import (
	"github.com/complaintbox/backend/internal/dto"
	"github.com/complaintbox/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

var roleLabels = map[string]string{
	models.RoleAdmin:      "Admin",
	models.RoleSuperAdmin: "Super admin",
}

// RequireRole is the single place role authorization happens. The 401 carries
// a role-specific message so clients can tell insufficient role apart from a
// missing session.
func RequireRole(role string) fiber.Handler {
	label, ok := roleLabels[role]
	if !ok {
		label = role
	}
	message := "Unauthorized - " + label + " access required"

	return func(c *fiber.Ctx) error {
		session, err := CurrentSession(c)
		if err != nil || session.Role != role {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: message,
			})
		}
		return c.Next()
	}
}

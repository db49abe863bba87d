package middleware

import (
	"errors"

	"github.com/complaintbox/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CurrentSession extracts the admin session from the verified JWT that
// JWTProtected stored in context locals.
func CurrentSession(c *fiber.Ctx) (dto.SessionUser, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return dto.SessionUser{}, errors.New("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dto.SessionUser{}, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return dto.SessionUser{}, errors.New("missing sub claim")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return dto.SessionUser{ID: id, Username: username, Role: role}, nil
}

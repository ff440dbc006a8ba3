// Package middleware provides the JWT guard and role checks for protected
// routes.
package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/service/auth"
)

// PrincipalKey is the locals key under which RequireRoles stores the
// resolved *dto.UserRead.
const PrincipalKey = "principal"

// Protected validates the bearer token signature and expiry and stores the
// parsed token in c.Locals("user").
func Protected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

// RequireRoles resolves the live principal behind the validated token and
// rejects the request unless its role is one of the given roles. An empty
// role set admits any authenticated user.
func RequireRoles(authSvc *auth.Service, roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals("user").(*jwt.Token)
		principal, _, err := authSvc.Authorize(c.Context(), token, roles...)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": "error", "message": "Unauthorized", "data": nil,
			})
		}
		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.Contains(
		strings.ToLower(err.Error()), "missing or malformed jwt") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error", "message": "Missing or malformed JWT", "data": nil,
		})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status": "error", "message": "Invalid or expired JWT", "data": nil,
	})
}

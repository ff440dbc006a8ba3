// Package role exposes the read-only role directory.
package role

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/middleware"
	authsvc "github.com/yosvanyperez/fondos/pkg/service/auth"
	rolesvc "github.com/yosvanyperez/fondos/pkg/service/role"
	"github.com/yosvanyperez/fondos/webapi/common"
)

// Routes registers the role endpoints.
func Routes(
	app *fiber.App,
	roleSvc *rolesvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	jwt := middleware.Protected(cfg.Jwt)
	admin := middleware.RequireRoles(authSvc, domain.RoleAdministrator)
	app.Get("/role", jwt, admin, ListRoles(roleSvc))
	app.Get("/role/:id", jwt, admin, GetRole(roleSvc))
}

// ListRoles lists the seeded roles.
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /role [get]
// @Security Bearer
func ListRoles(roleSvc *rolesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, err := roleSvc.List(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list roles", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Roles found", roles)
	}
}

// GetRole returns one role by id.
// @Summary Get role by ID
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /role/{id} [get]
// @Security Bearer
func GetRole(roleSvc *rolesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid role ID", err,
				"Role ID must be a valid UUID", fiber.StatusBadRequest)
		}
		role, err := roleSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get role", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Role found", role)
	}
}

// Package user exposes the user directory endpoints. Password resets act on
// the caller's own account; administrators may additionally update other
// users, and listing and deletion are administrator-only.
package user

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/middleware"
	authsvc "github.com/yosvanyperez/fondos/pkg/service/auth"
	usersvc "github.com/yosvanyperez/fondos/pkg/service/user"
	"github.com/yosvanyperez/fondos/webapi/common"
)

// Routes registers the user endpoints.
func Routes(
	app *fiber.App,
	userSvc *usersvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	jwt := middleware.Protected(cfg.Jwt)
	admin := middleware.RequireRoles(authSvc, domain.RoleAdministrator)
	anyRole := middleware.RequireRoles(authSvc)

	app.Get("/user", jwt, admin, ListUsers(userSvc))
	app.Get("/user/find-by", jwt, anyRole, FindUser(userSvc))
	app.Put("/user", jwt, anyRole, UpdateUser(userSvc))
	app.Patch("/user/reset-password", jwt, anyRole, ResetPassword(userSvc))
	app.Delete("/user/:id", jwt, admin, DeleteUser(userSvc))
}

// ListUsers returns a page of active users.
// @Summary List users
// @Description Page through active users; keywords match usernames as substrings
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param keywords query string false "Comma-separated username fragments"
// @Param withRole query bool false "Include role data"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /user [get]
// @Security Bearer
func ListUsers(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		size := c.QueryInt("size", 10)
		keywords := splitQuery(c.Query("keywords"))
		withRole := c.QueryBool("withRole", false)
		users, err := userSvc.List(c.Context(), page, size, keywords, withRole)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list users", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Users found", users)
	}
}

// FindUser looks a user up by id, username or email.
// @Summary Find user
// @Description Look a user up by id, username or email; first given wins
// @Tags users
// @Produce json
// @Param id query string false "User ID"
// @Param username query string false "Username"
// @Param email query string false "Email"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/find-by [get]
// @Security Bearer
func FindUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id *uuid.UUID
		if raw := c.Query("id"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid user ID", err,
					"User ID must be a valid UUID", fiber.StatusBadRequest)
			}
			id = &parsed
		}
		found, err := userSvc.FindBy(
			c.Context(), id, c.Query("username"), c.Query("email"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't find user", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "User found", found)
	}
}

// UpdateUser renames a user or changes their email. Without an id query
// parameter it acts on the caller; naming another user's id requires the
// administrator role.
// @Summary Update a user account
// @Tags users
// @Accept json
// @Produce json
// @Param id query string false "Target user ID (administrators only)"
// @Param request body UpdateUserRequest true "User data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /user [put]
// @Security Bearer
func UpdateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateUserRequest](c)
		if input == nil {
			return err
		}
		principal, _ := c.Locals(middleware.PrincipalKey).(*dto.UserRead)
		if principal == nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil,
				"missing user context", fiber.StatusUnauthorized)
		}
		targetID := principal.ID
		if raw := c.Query("id"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid user ID", err,
					"User ID must be a valid UUID", fiber.StatusBadRequest)
			}
			if parsed != principal.ID &&
				principal.Role != domain.RoleAdministrator {
				return common.ProblemDetailsJSON(c, "Forbidden", nil,
					"Only administrators can update other users",
					fiber.StatusForbidden)
			}
			targetID = parsed
		}
		updated, err := userSvc.Update(c.Context(), targetID, dto.UserUpdate{
			Username: input.Username,
			Email:    input.Email,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "User updated", updated)
	}
}

// ResetPassword changes the caller's password after verifying the old one.
// @Summary Reset password
// @Tags users
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Old and new password"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /user/reset-password [patch]
// @Security Bearer
func ResetPassword(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ResetPasswordRequest](c)
		if input == nil {
			return err
		}
		principal, _ := c.Locals(middleware.PrincipalKey).(*dto.UserRead)
		if principal == nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil,
				"missing user context", fiber.StatusUnauthorized)
		}
		err = userSvc.ResetPassword(
			c.Context(), principal.ID, input.OldPassword, input.NewPassword)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't reset password", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Password updated", nil)
	}
}

// DeleteUser soft-deletes a user and detaches the funds they own.
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id} [delete]
// @Security Bearer
func DeleteUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		deleted, err := userSvc.Delete(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete user", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "User deleted", deleted)
	}
}

func splitQuery(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

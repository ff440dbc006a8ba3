// Package auth exposes the login, refresh, register and token validation
// endpoints.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/middleware"
	authsvc "github.com/yosvanyperez/fondos/pkg/service/auth"
	"github.com/yosvanyperez/fondos/webapi/common"
)

// Routes registers the auth gateway endpoints.
func Routes(app *fiber.App, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/auth/login", Login(authSvc))
	app.Post("/auth/refresh", Refresh(authSvc))
	app.Post("/auth/register",
		middleware.Protected(cfg.Jwt),
		middleware.RequireRoles(authSvc, domain.RoleAdministrator),
		Register(authSvc))
	app.Get("/auth",
		middleware.Protected(cfg.Jwt),
		Validate(authSvc))
}

// Login authenticates a user and issues a token pair.
// @Summary Log in
// @Description Verify credentials and issue an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		result, err := authSvc.Login(c.Context(), input.Username, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Login failed", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Login successful", result)
	}
}

// Refresh rotates a token pair.
// @Summary Refresh tokens
// @Description Exchange a live refresh token for a fresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Current token pair"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/refresh [post]
func Refresh(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RefreshRequest](c)
		if input == nil {
			return err
		}
		result, err := authSvc.Refresh(
			c.Context(), input.AccessToken, input.RefreshToken)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Refresh failed", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Refresh successful", result)
	}
}

// Register creates a user account.
// @Summary Register a user
// @Description Create a user with a username, email, password and role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /auth/register [post]
// @Security Bearer
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		roleID, err := uuid.Parse(input.RoleID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid role ID", err,
				"Role ID must be a valid UUID", fiber.StatusBadRequest)
		}
		created, err := authSvc.Register(c.Context(), dto.RegisterInput{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
			RoleID:   roleID,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't register user", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusCreated, "User registered", created)
	}
}

// Validate reports the principal behind a live access token.
// @Summary Validate token
// @Description Confirm the bearer token and return its username and role
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /auth [get]
// @Security Bearer
func Validate(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals("user").(*jwt.Token)
		principal, role, err := authSvc.Authorize(c.Context(), token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Token valid",
			dto.TokenValidation{Username: principal.Username, Role: role})
	}
}

// Package currency exposes the currency registry endpoints. All of them are
// administrator-only.
package currency

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/middleware"
	authsvc "github.com/yosvanyperez/fondos/pkg/service/auth"
	currencysvc "github.com/yosvanyperez/fondos/pkg/service/currency"
	"github.com/yosvanyperez/fondos/webapi/common"
)

// Routes registers the currency endpoints.
func Routes(
	app *fiber.App,
	currencySvc *currencysvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	jwt := middleware.Protected(cfg.Jwt)
	admin := middleware.RequireRoles(authSvc, domain.RoleAdministrator)
	app.Get("/currency", jwt, admin, ListCurrencies(currencySvc))
	app.Post("/currency", jwt, admin, AddCurrency(currencySvc))
	app.Put("/currency/:id", jwt, admin, UpdateCurrency(currencySvc))
	app.Delete("/currency/:id", jwt, admin, DeleteCurrency(currencySvc))
}

// ListCurrencies lists the active currencies and their system-wide balances.
// @Summary List currencies
// @Description List active currencies; ?funds=true expands the funds holding each
// @Tags currencies
// @Produce json
// @Param funds query bool false "Include fund balances"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /currency [get]
// @Security Bearer
func ListCurrencies(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		withFunds := c.QueryBool("funds", false)
		currencies, err := currencySvc.List(c.Context(), withFunds)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list currencies", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Currencies found", currencies)
	}
}

// AddCurrency registers a currency.
// @Summary Add currency
// @Description Register a currency; reactivates a previously deleted one
// @Tags currencies
// @Accept json
// @Produce json
// @Param request body CurrencyRequest true "Currency name"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /currency [post]
// @Security Bearer
func AddCurrency(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CurrencyRequest](c)
		if input == nil {
			return err
		}
		added, err := currencySvc.Add(
			c.Context(), dto.CurrencyCreate{Name: input.Currency})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't add currency", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusCreated, "Currency added", added)
	}
}

// UpdateCurrency renames a currency.
// @Summary Rename currency
// @Tags currencies
// @Accept json
// @Produce json
// @Param id path string true "Currency ID"
// @Param request body CurrencyRequest true "New name"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /currency/{id} [put]
// @Security Bearer
func UpdateCurrency(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency ID", err,
				"Currency ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[CurrencyRequest](c)
		if input == nil {
			return err
		}
		updated, err := currencySvc.Update(
			c.Context(), id, dto.CurrencyCreate{Name: input.Currency})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update currency", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Currency updated", updated)
	}
}

// DeleteCurrency soft-deletes a currency and zeroes its balances everywhere.
// @Summary Delete currency
// @Description Remove a currency from the registry and from every fund
// @Tags currencies
// @Produce json
// @Param id path string true "Currency ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /currency/{id} [delete]
// @Security Bearer
func DeleteCurrency(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency ID", err,
				"Currency ID must be a valid UUID", fiber.StatusBadRequest)
		}
		principal, _ := c.Locals(middleware.PrincipalKey).(*dto.UserRead)
		if principal == nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil,
				"missing user context", fiber.StatusUnauthorized)
		}
		deleted, err := currencySvc.Delete(c.Context(), principal.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete currency", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Currency deleted", deleted)
	}
}

// Package logs exposes the activity-log query endpoint. Any authenticated
// role may query; assessors only see rows of funds they own.
package logs

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/middleware"
	activitysvc "github.com/yosvanyperez/fondos/pkg/service/activity"
	authsvc "github.com/yosvanyperez/fondos/pkg/service/auth"
	"github.com/yosvanyperez/fondos/webapi/common"
)

// Routes registers the activity-log endpoints.
func Routes(
	app *fiber.App,
	activitySvc *activitysvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	app.Post("/logs/funds",
		middleware.Protected(cfg.Jwt),
		middleware.RequireRoles(authSvc),
		QueryLogs(activitySvc))
}

// QueryLogs returns a filtered, ordered page of activity rows.
// @Summary Query activity log
// @Description Page through the activity log; the filter travels in the body
// @Tags logs
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param request body QueryRequest true "Filter"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /logs/funds [post]
// @Security Bearer
func QueryLogs(activitySvc *activitysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[QueryRequest](c)
		if input == nil {
			return err
		}
		principal, _ := c.Locals(middleware.PrincipalKey).(*dto.UserRead)
		if principal == nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil,
				"missing user context", fiber.StatusUnauthorized)
		}
		filter := &dto.ActivityFilter{
			Since:            input.Since,
			Until:            input.Until,
			AmountMin:        input.AmountMin,
			AmountMax:        input.AmountMax,
			Activities:       input.Activities,
			TransactionTypes: input.TransactionTypes,
			Funds:            input.Funds,
			Users:            input.Users,
			OrderByAmount:    input.OrderByAmount,
			Desc:             input.Desc,
		}
		for _, raw := range input.Currencies {
			id, err := uuid.Parse(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid currency ID", err,
					fiber.StatusBadRequest)
			}
			filter.Currencies = append(filter.Currencies, id)
		}
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)
		result, err := activitySvc.Query(
			c.Context(), principal, page, limit, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't query logs", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Logs found", result)
	}
}

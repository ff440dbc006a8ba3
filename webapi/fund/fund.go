// Package fund exposes the fund ledger endpoints: CRUD, deposits,
// withdrawals, transfers and owner attachment.
package fund

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/middleware"
	authsvc "github.com/yosvanyperez/fondos/pkg/service/auth"
	fundsvc "github.com/yosvanyperez/fondos/pkg/service/fund"
	"github.com/yosvanyperez/fondos/webapi/common"
)

// Routes registers the fund endpoints.
func Routes(
	app *fiber.App,
	fundSvc *fundsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	jwt := middleware.Protected(cfg.Jwt)
	admin := middleware.RequireRoles(authSvc, domain.RoleAdministrator)
	supervisor := middleware.RequireRoles(
		authSvc, domain.RoleAdministrator, domain.RoleSupervisor)
	anyRole := middleware.RequireRoles(authSvc)

	app.Get("/fund", jwt, supervisor, ListFunds(fundSvc))
	app.Get("/fund/user/:id", jwt, anyRole, ListFundsByOwner(fundSvc))
	app.Get("/fund/:id", jwt, anyRole, GetFund(fundSvc))
	app.Post("/fund", jwt, admin, CreateFund(fundSvc))
	app.Patch("/fund/attach-user/:fundId/:userId", jwt, admin, AttachUser(fundSvc))
	app.Patch("/fund/:id", jwt, admin, UpdateFund(fundSvc))
	app.Post("/fund/transfer", jwt, supervisor, Transfer(fundSvc))
	app.Post("/fund/deposit", jwt, admin, Deposit(fundSvc))
	app.Post("/fund/withdrawal", jwt, admin, Withdraw(fundSvc))
	app.Delete("/fund/:id", jwt, admin, DeleteFund(fundSvc))
}

// ListFunds returns a filtered, ordered page of funds.
// @Summary List funds
// @Description Page through active funds with optional name/owner/currency filters
// @Tags funds
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param funds query string false "Comma-separated name fragments"
// @Param usernames query string false "Comma-separated owner fragments"
// @Param currencies query string false "Comma-separated currency IDs"
// @Param orderBy query string false "funds | usernames | create_at"
// @Param desc query bool false "Descending order"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /fund [get]
// @Security Bearer
func ListFunds(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := parseFilter(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid filter", err,
				fiber.StatusBadRequest)
		}
		page := c.QueryInt("page", 1)
		size := c.QueryInt("size", 10)
		funds, err := fundSvc.List(c.Context(), page, size, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list funds", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Funds found", funds)
	}
}

// GetFund returns one fund with its balances and owner.
// @Summary Get fund by ID
// @Tags funds
// @Produce json
// @Param id path string true "Fund ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /fund/{id} [get]
// @Security Bearer
func GetFund(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid fund ID", err,
				"Fund ID must be a valid UUID", fiber.StatusBadRequest)
		}
		fund, err := fundSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get fund", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Fund found", fund)
	}
}

// ListFundsByOwner returns the funds attached to one user.
// @Summary List funds by owner
// @Tags funds
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /fund/user/{id} [get]
// @Security Bearer
func ListFundsByOwner(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		funds, err := fundSvc.ListByOwner(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list funds", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Funds found", funds)
	}
}

// CreateFund opens a fund with no balances.
// @Summary Create fund
// @Tags funds
// @Accept json
// @Produce json
// @Param request body CreateFundRequest true "Fund data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /fund [post]
// @Security Bearer
func CreateFund(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateFundRequest](c)
		if input == nil {
			return err
		}
		principal, _ := c.Locals(middleware.PrincipalKey).(*dto.UserRead)
		if principal == nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil,
				"missing user context", fiber.StatusUnauthorized)
		}
		created, err := fundSvc.Create(c.Context(), principal.ID, dto.FundCreate{
			Name:        input.Name,
			LocationURL: input.LocationURL,
			Address:     input.Address,
			Details:     input.Details,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create fund", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusCreated, "Fund created", created)
	}
}

// UpdateFund changes the descriptive fields of a fund.
// @Summary Update fund
// @Tags funds
// @Accept json
// @Produce json
// @Param id path string true "Fund ID"
// @Param request body UpdateFundRequest true "Fund data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /fund/{id} [patch]
// @Security Bearer
func UpdateFund(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid fund ID", err,
				"Fund ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateFundRequest](c)
		if input == nil {
			return err
		}
		updated, err := fundSvc.Update(c.Context(), id, dto.FundUpdate{
			Name:        input.Name,
			LocationURL: input.LocationURL,
			Address:     input.Address,
			Details:     input.Details,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update fund", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Fund updated", updated)
	}
}

// Deposit adds an amount of a registered currency to a fund.
// @Summary Deposit
// @Tags funds
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Deposit data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /fund/deposit [post]
// @Security Bearer
func Deposit(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, in, err := transactionInput(c)
		if in == nil {
			return err
		}
		fund, err := fundSvc.Deposit(c.Context(), principal.ID, *in)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't make deposit", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Deposit successful", fund)
	}
}

// Withdraw removes an amount of a currency from a fund.
// @Summary Withdraw
// @Tags funds
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Withdrawal data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /fund/withdrawal [post]
// @Security Bearer
func Withdraw(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, in, err := transactionInput(c)
		if in == nil {
			return err
		}
		fund, err := fundSvc.Withdraw(c.Context(), principal.ID, *in)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't make withdrawal", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Withdrawal successful", fund)
	}
}

// Transfer moves an amount of one currency between two funds.
// @Summary Transfer
// @Tags funds
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /fund/transfer [post]
// @Security Bearer
func Transfer(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		principal, _ := c.Locals(middleware.PrincipalKey).(*dto.UserRead)
		if principal == nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil,
				"missing user context", fiber.StatusUnauthorized)
		}
		sourceID, err := uuid.Parse(input.SourceID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid source fund ID", err,
				fiber.StatusBadRequest)
		}
		destinationID, err := uuid.Parse(input.DestinationID)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid destination fund ID", err, fiber.StatusBadRequest)
		}
		currencyID, err := uuid.Parse(input.CurrencyID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency ID", err,
				fiber.StatusBadRequest)
		}
		source, destination, err := fundSvc.Transfer(
			c.Context(), principal.ID, dto.TransferInput{
				SourceID:      sourceID,
				DestinationID: destinationID,
				CurrencyID:    currencyID,
				Amount:        input.Amount,
				Details:       input.Details,
			})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't make transfer", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Transfer successful",
			fiber.Map{"source": source, "destination": destination})
	}
}

// AttachUser attaches a user to a fund, or detaches the current owner when
// the user id is the nil UUID.
// @Summary Attach user to fund
// @Tags funds
// @Produce json
// @Param fundId path string true "Fund ID"
// @Param userId path string true "User ID (nil UUID detaches)"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /fund/attach-user/{fundId}/{userId} [patch]
// @Security Bearer
func AttachUser(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fundID, err := uuid.Parse(c.Params("fundId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid fund ID", err,
				"Fund ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := uuid.Parse(c.Params("userId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		fund, err := fundSvc.AttachOwner(c.Context(), fundID, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't attach user", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "User attached", fund)
	}
}

// DeleteFund soft-deletes a fund.
// @Summary Delete fund
// @Tags funds
// @Produce json
// @Param id path string true "Fund ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /fund/{id} [delete]
// @Security Bearer
func DeleteFund(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid fund ID", err,
				"Fund ID must be a valid UUID", fiber.StatusBadRequest)
		}
		principal, _ := c.Locals(middleware.PrincipalKey).(*dto.UserRead)
		if principal == nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil,
				"missing user context", fiber.StatusUnauthorized)
		}
		deleted, err := fundSvc.Delete(c.Context(), principal.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete fund", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Fund deleted", deleted)
	}
}

func transactionInput(
	c *fiber.Ctx,
) (*dto.UserRead, *dto.TransactionInput, error) {
	input, err := common.BindAndValidate[TransactionRequest](c)
	if input == nil {
		return nil, nil, err
	}
	principal, _ := c.Locals(middleware.PrincipalKey).(*dto.UserRead)
	if principal == nil {
		return nil, nil, common.ProblemDetailsJSON(c, "Unauthorized", nil,
			"missing user context", fiber.StatusUnauthorized)
	}
	fundID, err := uuid.Parse(input.FundID)
	if err != nil {
		return nil, nil, common.ProblemDetailsJSON(c, "Invalid fund ID", err,
			"Fund ID must be a valid UUID", fiber.StatusBadRequest)
	}
	currencyID, err := uuid.Parse(input.CurrencyID)
	if err != nil {
		return nil, nil, common.ProblemDetailsJSON(
			c, "Invalid currency ID", err,
			"Currency ID must be a valid UUID", fiber.StatusBadRequest)
	}
	return principal, &dto.TransactionInput{
		FundID:     fundID,
		CurrencyID: currencyID,
		Amount:     input.Amount,
		Details:    input.Details,
	}, nil
}

func parseFilter(c *fiber.Ctx) (*dto.FundFilter, error) {
	filter := &dto.FundFilter{
		Names:     splitQuery(c.Query("funds")),
		Usernames: splitQuery(c.Query("usernames")),
		OrderBy:   c.Query("orderBy", dto.FundOrderByCreated),
		Desc:      c.QueryBool("desc", false),
	}
	for _, raw := range splitQuery(c.Query("currencies")) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		filter.Currencies = append(filter.Currencies, id)
	}
	return filter, nil
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

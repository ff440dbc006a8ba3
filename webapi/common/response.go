// Package common holds the shared response envelope, RFC 9457 problem
// details and request binding helpers used by every handler package.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/yosvanyperez/fondos/pkg/domain"
)

// Response is the standard envelope for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(
	c *fiber.Ctx,
	status int,
	message string,
	data any,
) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem response. The status is
// derived from err unless an explicit int is passed in extras; string extras
// become the detail field.
func ProblemDetailsJSON(
	c *fiber.Ctx,
	title string,
	err error,
	extras ...any,
) error {
	status := ErrorToStatusCode(err)
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	for _, extra := range extras {
		switch v := extra.(type) {
		case int:
			status = v
		case string:
			pd.Detail = v
		default:
			pd.Errors = v
		}
	}
	pd.Status = status
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, domain.ErrFundNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRoleNotFound),
		errors.Is(err, domain.ErrCurrencyNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrCurrencyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrSameFund),
		errors.Is(err, domain.ErrAmountNotPositive),
		errors.Is(err, domain.ErrCurrencyNotRegistered),
		errors.Is(err, domain.ErrActivityAmountRequired):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUserUnauthorized),
		errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserProtected):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body into T and validates it with
// go-playground/validator. On failure the 400 problem response is already
// written, the returned pointer is nil, and the returned error only reports
// a failure to write that response — handlers return it as-is so the app
// error handler never re-handles the bind error itself.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(
			c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validator.New().Struct(input); err != nil {
		return nil, ProblemDetailsJSON(
			c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

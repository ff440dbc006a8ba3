// Package webapi provides the HTTP surface. It is organized into
// sub-packages per domain:
// - auth: login, refresh, register and token validation
// - fund: fund CRUD, deposits, withdrawals and transfers
// - currency: the currency registry
// - user: the user directory
// - role: the read-only role directory
// - logs: activity-log queries
package webapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/yosvanyperez/fondos/pkg/app"
	authweb "github.com/yosvanyperez/fondos/webapi/auth"
	"github.com/yosvanyperez/fondos/webapi/common"
	currencyweb "github.com/yosvanyperez/fondos/webapi/currency"
	fundweb "github.com/yosvanyperez/fondos/webapi/fund"
	logsweb "github.com/yosvanyperez/fondos/webapi/logs"
	roleweb "github.com/yosvanyperez/fondos/webapi/role"
	userweb "github.com/yosvanyperez/fondos/webapi/user"
)

// SetupApp initializes Fiber with middleware and all routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return common.ProblemDetailsJSON(
					c, e.Message, err, e.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Behind a proxy the client IP is in X-Forwarded-For; fall back to the
	// direct peer address.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return forwardedFor
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil,
				"Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	authweb.Routes(fiberApp, a.AuthService, a.Config)
	fundweb.Routes(fiberApp, a.FundService, a.AuthService, a.Config)
	currencyweb.Routes(fiberApp, a.CurrencyService, a.AuthService, a.Config)
	userweb.Routes(fiberApp, a.UserService, a.AuthService, a.Config)
	roleweb.Routes(fiberApp, a.RoleService, a.AuthService, a.Config)
	logsweb.Routes(fiberApp, a.ActivityService, a.AuthService, a.Config)

	return fiberApp
}

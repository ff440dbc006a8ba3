package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yosvanyperez/fondos/internal/fixtures/memrepo"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/service/auth"
	"github.com/yosvanyperez/fondos/pkg/utils"
)

func testJwtConfig() config.Jwt {
	return config.Jwt{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "fondos",
		Expiry:        time.Hour,
		RefreshExpiry: 3 * time.Hour,
	}
}

func loginToken(t *testing.T, store *memrepo.Store, svc *auth.Service) string {
	t.Helper()
	hash, salt, err := utils.HashPassword("s3cretpass")
	if err != nil {
		t.Fatal(err)
	}
	store.SeedUser(
		"maria", "maria@example.com", domain.RoleSupervisor, hash, salt)
	result, err := svc.Login(t.Context(), "maria", "s3cretpass")
	if err != nil {
		t.Fatal(err)
	}
	return result.AccessToken
}

func TestProtected_Unauthorized(t *testing.T) {
	app := fiber.New()
	app.Use(Protected(testJwtConfig()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode == fiber.StatusOK {
		t.Error("expected unauthorized, got 200")
	}
}

func TestProtected_ValidToken(t *testing.T) {
	store := memrepo.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := auth.New(store, testJwtConfig(), logger)
	token := loginToken(t, store, svc)

	app := fiber.New()
	app.Use(Protected(testJwtConfig()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireRoles_StoresPrincipal(t *testing.T) {
	store := memrepo.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := auth.New(store, testJwtConfig(), logger)
	token := loginToken(t, store, svc)

	app := fiber.New()
	app.Use(Protected(testJwtConfig()))
	app.Get("/", RequireRoles(svc, domain.RoleSupervisor),
		func(c *fiber.Ctx) error {
			principal, ok := c.Locals(PrincipalKey).(*dto.UserRead)
			if !ok || principal.Username != "maria" {
				return c.SendStatus(fiber.StatusInternalServerError)
			}
			return c.SendStatus(fiber.StatusOK)
		})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireRoles_WrongRole(t *testing.T) {
	store := memrepo.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := auth.New(store, testJwtConfig(), logger)
	token := loginToken(t, store, svc)

	app := fiber.New()
	app.Use(Protected(testJwtConfig()))
	app.Get("/", RequireRoles(svc, domain.RoleAdministrator),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected %d, got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestJwtError_Malformed(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("Missing or malformed JWT"))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected %d, got %d", fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestJwtError_Invalid(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("any other error"))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected %d, got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}

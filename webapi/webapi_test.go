package webapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"github.com/yosvanyperez/fondos/internal/fixtures/memrepo"
	"github.com/yosvanyperez/fondos/pkg/app"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/utils"
)

// APITestSuite runs the full Fiber app against the in-memory store. An admin
// account with password "password123" is seeded before every test.
type APITestSuite struct {
	suite.Suite
	app   *fiber.App
	store *memrepo.Store
	admin dto.UserRead
}

func (s *APITestSuite) SetupTest() {
	s.store = memrepo.NewStore()
	hash, salt, err := utils.HashPassword("password123")
	s.Require().NoError(err)
	s.admin = s.store.SeedUser(
		"admin", "admin@example.com", domain.RoleAdministrator, hash, salt)

	cfg := &config.App{
		Env: "test",
		Jwt: config.Jwt{
			Secret:        "access-secret",
			RefreshSecret: "refresh-secret",
			Issuer:        "fondos",
			Expiry:        time.Hour,
			RefreshExpiry: 3 * time.Hour,
		},
		RateLimit: config.RateLimit{
			MaxRequests: 10000,
			Window:      time.Minute,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.app = SetupApp(app.New(&app.Deps{Uow: s.store, Logger: logger}, cfg))
}

func (s *APITestSuite) makeRequest(
	method, target, body, token string,
) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// decodeData unmarshals the data field of the success envelope into out.
func (s *APITestSuite) decodeData(resp *http.Response, out any) {
	var envelope struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	s.Require().NoError(json.Unmarshal(envelope.Data, out))
}

func (s *APITestSuite) loginAdmin() (accessToken, refreshToken string) {
	resp := s.makeRequest("POST", "/auth/login",
		`{"username":"admin","password":"password123"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var result struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	s.decodeData(resp, &result)
	s.Require().NotEmpty(result.AccessToken)
	s.Require().NotEmpty(result.RefreshToken)
	return result.AccessToken, result.RefreshToken
}

type SmokeTestSuite struct {
	APITestSuite
}

func (s *SmokeTestSuite) TestRootRoute() {
	resp := s.makeRequest("GET", "/", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Assert().Contains(string(body), "App is working!")
}

func (s *SmokeTestSuite) TestProtectedRoute_MissingToken() {
	resp := s.makeRequest("GET", "/fund", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *SmokeTestSuite) TestProtectedRoute_GarbageToken() {
	resp := s.makeRequest("GET", "/fund", "", "not-a-jwt")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *SmokeTestSuite) TestUnknownRoute() {
	resp := s.makeRequest("GET", "/does-not-exist", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusNotFound, resp.StatusCode)
}

func TestSmokeTestSuite(t *testing.T) {
	suite.Run(t, new(SmokeTestSuite))
}

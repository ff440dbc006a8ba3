package webapi

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/yosvanyperez/fondos/pkg/domain"
)

type AuthTestSuite struct {
	APITestSuite
}

func (s *AuthTestSuite) TestLoginRoute_BadRequest() {
	resp := s.makeRequest("POST", "/auth/login", `{"username":"admin"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthTestSuite) TestLoginRoute_UnknownUser() {
	resp := s.makeRequest("POST", "/auth/login",
		`{"username":"nobody","password":"password123"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *AuthTestSuite) TestLoginRoute_InvalidPassword() {
	resp := s.makeRequest("POST", "/auth/login",
		`{"username":"admin","password":"wrongpassword"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthTestSuite) TestLoginRoute_Success() {
	access, refresh := s.loginAdmin()
	s.Assert().NotEmpty(access)
	s.Assert().NotEmpty(refresh)
	s.Assert().Len(s.store.Sessions(), 1)
}

func (s *AuthTestSuite) TestRefreshRoute_RotatesTokens() {
	access, refresh := s.loginAdmin()

	body := fmt.Sprintf(
		`{"accessToken":%q,"refreshToken":%q}`, access, refresh)
	resp := s.makeRequest("POST", "/auth/refresh", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var rotated struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	s.decodeData(resp, &rotated)
	s.Assert().NotEqual(refresh, rotated.RefreshToken)

	// Replaying the consumed pair fails.
	replay := s.makeRequest("POST", "/auth/refresh", body, "")
	defer replay.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusUnauthorized, replay.StatusCode)
}

func (s *AuthTestSuite) TestRegisterRoute_RequiresToken() {
	resp := s.makeRequest("POST", "/auth/register",
		`{"username":"maria","email":"maria@example.com","password":"password123","confirmation":"password123","roleId":"whatever"}`,
		"")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthTestSuite) TestRegisterRoute_Success() {
	access, _ := s.loginAdmin()

	body := fmt.Sprintf(
		`{"username":"maria","email":"maria@example.com","password":"password123","confirmation":"password123","roleId":%q}`,
		s.store.RoleID(domain.RoleAssessor).String())
	resp := s.makeRequest("POST", "/auth/register", body, access)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	s.decodeData(resp, &created)
	s.Assert().Equal("maria", created.Username)
	s.Assert().Equal("assessor", created.Role)

	// The fresh account can log in right away.
	login := s.makeRequest("POST", "/auth/login",
		`{"username":"maria","password":"password123"}`, "")
	defer login.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusOK, login.StatusCode)
}

func (s *AuthTestSuite) TestRegisterRoute_MismatchedConfirmation() {
	access, _ := s.loginAdmin()

	body := fmt.Sprintf(
		`{"username":"maria","email":"maria@example.com","password":"password123","confirmation":"something-else","roleId":%q}`,
		s.store.RoleID(domain.RoleAssessor).String())
	resp := s.makeRequest("POST", "/auth/register", body, access)
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)

	// Nothing got created.
	login := s.makeRequest("POST", "/auth/login",
		`{"username":"maria","password":"password123"}`, "")
	defer login.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusNotFound, login.StatusCode)
}

func (s *AuthTestSuite) TestRegisterRoute_NonAdminForbidden() {
	access, _ := s.loginAdmin()

	body := fmt.Sprintf(
		`{"username":"maria","email":"maria@example.com","password":"password123","confirmation":"password123","roleId":%q}`,
		s.store.RoleID(domain.RoleAssessor).String())
	resp := s.makeRequest("POST", "/auth/register", body, access)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	login := s.makeRequest("POST", "/auth/login",
		`{"username":"maria","password":"password123"}`, "")
	defer login.Body.Close() //nolint: errcheck
	var result struct {
		AccessToken string `json:"accessToken"`
	}
	s.decodeData(login, &result)

	attempt := s.makeRequest("POST", "/auth/register",
		fmt.Sprintf(
			`{"username":"pedro","email":"pedro@example.com","password":"password123","confirmation":"password123","roleId":%q}`,
			s.store.RoleID(domain.RoleAssessor).String()),
		result.AccessToken)
	defer attempt.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusUnauthorized, attempt.StatusCode)
}

func (s *AuthTestSuite) TestValidateRoute() {
	access, _ := s.loginAdmin()

	resp := s.makeRequest("GET", "/auth", "", access)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var validation struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	s.decodeData(resp, &validation)
	s.Assert().Equal("admin", validation.Username)
	s.Assert().Equal("administrator", validation.Role)
}

func (s *AuthTestSuite) TestValidateRoute_ForgedToken() {
	resp := s.makeRequest("GET", "/auth", "",
		forgedToken(s.T(), "admin", "administrator"))
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

// forgedToken mints a well-formed token signed with the wrong key.
func forgedToken(t *testing.T, username, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  uuid.NewString(),
		"username": username,
		"role":     role,
		"iss":      "fondos",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("some-other-key"))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

package webapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/utils"
)

type FundTestSuite struct {
	APITestSuite
	access string
}

func (s *FundTestSuite) SetupTest() {
	s.APITestSuite.SetupTest()
	s.access, _ = s.loginAdmin()
}

func (s *FundTestSuite) createCurrency(name string) string {
	resp := s.makeRequest("POST", "/currency",
		fmt.Sprintf(`{"currency":%q}`, name), s.access)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	s.decodeData(resp, &created)
	return created.ID
}

func (s *FundTestSuite) createFund(name string) string {
	resp := s.makeRequest("POST", "/fund",
		fmt.Sprintf(`{"name":%q}`, name), s.access)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	s.decodeData(resp, &created)
	return created.ID
}

func (s *FundTestSuite) deposit(fundID, currencyID string, amount float64) *http.Response {
	body := fmt.Sprintf(
		`{"fundId":%q,"currencyId":%q,"amount":%v}`, fundID, currencyID, amount)
	return s.makeRequest("POST", "/fund/deposit", body, s.access)
}

func (s *FundTestSuite) TestCreateFund_BadRequest() {
	resp := s.makeRequest("POST", "/fund", `{"name":""}`, s.access)
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *FundTestSuite) TestDepositRoute() {
	currencyID := s.createCurrency("CUP")
	fundID := s.createFund("Fondo Familiar")

	resp := s.deposit(fundID, currencyID, 100)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var fund struct {
		Currencies []struct {
			Currency string  `json:"currency"`
			Amount   float64 `json:"amount"`
		} `json:"currencies"`
	}
	s.decodeData(resp, &fund)
	s.Require().Len(fund.Currencies, 1)
	s.Assert().Equal("CUP", fund.Currencies[0].Currency)
	s.Assert().InDelta(100, fund.Currencies[0].Amount, 1e-9)
}

func (s *FundTestSuite) TestDepositRoute_UnknownCurrency() {
	fundID := s.createFund("Fondo Familiar")

	resp := s.deposit(fundID, "4ee7e4fa-3e46-4a59-b6c5-2b4f70a3d4ad", 100)
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *FundTestSuite) TestWithdrawalRoute_InsufficientBalance() {
	currencyID := s.createCurrency("CUP")
	fundID := s.createFund("Fondo Familiar")
	resp := s.deposit(fundID, currencyID, 100)
	resp.Body.Close() //nolint: errcheck

	body := fmt.Sprintf(
		`{"fundId":%q,"currencyId":%q,"amount":150}`, fundID, currencyID)
	withdrawal := s.makeRequest("POST", "/fund/withdrawal", body, s.access)
	defer withdrawal.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusBadRequest, withdrawal.StatusCode)
}

func (s *FundTestSuite) TestTransferRoute() {
	currencyID := s.createCurrency("CUP")
	sourceID := s.createFund("Fondo Familiar")
	destinationID := s.createFund("Fondo Escolar")
	resp := s.deposit(sourceID, currencyID, 100)
	resp.Body.Close() //nolint: errcheck

	body := fmt.Sprintf(
		`{"sourceId":%q,"destinationId":%q,"currencyId":%q,"amount":40}`,
		sourceID, destinationID, currencyID)
	transfer := s.makeRequest("POST", "/fund/transfer", body, s.access)
	defer transfer.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, transfer.StatusCode)

	var result struct {
		Source struct {
			Currencies []struct {
				Amount float64 `json:"amount"`
			} `json:"currencies"`
		} `json:"source"`
		Destination struct {
			Currencies []struct {
				Amount float64 `json:"amount"`
			} `json:"currencies"`
		} `json:"destination"`
	}
	s.decodeData(transfer, &result)
	s.Require().Len(result.Source.Currencies, 1)
	s.Require().Len(result.Destination.Currencies, 1)
	s.Assert().InDelta(60, result.Source.Currencies[0].Amount, 1e-9)
	s.Assert().InDelta(40, result.Destination.Currencies[0].Amount, 1e-9)
}

func (s *FundTestSuite) TestTransferRoute_SameFund() {
	currencyID := s.createCurrency("CUP")
	fundID := s.createFund("Fondo Familiar")
	resp := s.deposit(fundID, currencyID, 100)
	resp.Body.Close() //nolint: errcheck

	body := fmt.Sprintf(
		`{"sourceId":%q,"destinationId":%q,"currencyId":%q,"amount":40}`,
		fundID, fundID, currencyID)
	transfer := s.makeRequest("POST", "/fund/transfer", body, s.access)
	defer transfer.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusBadRequest, transfer.StatusCode)
}

func (s *FundTestSuite) TestFundReadRoutes_AssessorSeesOwnFunds() {
	hash, salt, err := utils.HashPassword("password123")
	s.Require().NoError(err)
	assessor := s.store.SeedUser(
		"maria", "maria@example.com", domain.RoleAssessor, hash, salt)
	fundID := s.createFund("Fondo Familiar")

	attach := s.makeRequest("PATCH",
		"/fund/attach-user/"+fundID+"/"+assessor.ID.String(), "", s.access)
	attach.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, attach.StatusCode)

	login := s.makeRequest("POST", "/auth/login",
		`{"username":"maria","password":"password123"}`, "")
	defer login.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, login.StatusCode)
	var session struct {
		AccessToken string `json:"accessToken"`
	}
	s.decodeData(login, &session)

	owned := s.makeRequest(
		"GET", "/fund/user/"+assessor.ID.String(), "", session.AccessToken)
	defer owned.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusOK, owned.StatusCode)

	one := s.makeRequest("GET", "/fund/"+fundID, "", session.AccessToken)
	defer one.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusOK, one.StatusCode)

	// The paginated listing stays Administrator/Supervisor only.
	list := s.makeRequest("GET", "/fund", "", session.AccessToken)
	defer list.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusUnauthorized, list.StatusCode)
}

func (s *FundTestSuite) TestDeleteFundRoute() {
	fundID := s.createFund("Fondo Familiar")

	resp := s.makeRequest("DELETE", "/fund/"+fundID, "", s.access)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	lookup := s.makeRequest("GET", "/fund/"+fundID, "", s.access)
	defer lookup.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusNotFound, lookup.StatusCode)
}

func (s *FundTestSuite) TestLogsRoute_RecordsLifecycle() {
	currencyID := s.createCurrency("CUP")
	fundID := s.createFund("Fondo Familiar")
	resp := s.deposit(fundID, currencyID, 100)
	resp.Body.Close() //nolint: errcheck

	logs := s.makeRequest("POST", "/logs/funds", `{"desc":false}`, s.access)
	defer logs.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, logs.StatusCode)

	var page struct {
		Items []struct {
			Activity string  `json:"activity"`
			Fund     string  `json:"fund"`
			Amount   float64 `json:"amount"`
		} `json:"items"`
	}
	s.decodeData(logs, &page)
	s.Require().Len(page.Items, 2)
	s.Assert().Equal("Creación de un Fondo", page.Items[0].Activity)
	s.Assert().Equal("Depósito", page.Items[1].Activity)
	s.Assert().InDelta(100, page.Items[1].Amount, 1e-9)
}

func TestFundTestSuite(t *testing.T) {
	suite.Run(t, new(FundTestSuite))
}

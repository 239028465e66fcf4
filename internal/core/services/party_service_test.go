package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PartyServiceTestSuite struct {
	suite.Suite
	mockPartyRepo     *MockPartyRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.PartySvcFacade
	ctx               context.Context

	customer domain.Party
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewPartyService(suite.mockPartyRepo, suite.mockReportingRepo)
	suite.ctx = context.Background()

	suite.customer = domain.Party{
		PartyID:   "party-1",
		PartyType: domain.Customer,
		Name:      "Acme Corp",
		Code:      "ACME",
		IsActive:  true,
	}
}

func (suite *PartyServiceTestSuite) TestCreatePartySuccess() {
	req := dto.CreatePartyRequest{
		PartyType:   domain.Customer,
		Name:        "Acme Corp",
		Code:        "ACME",
		CreditLimit: "5000.50",
	}
	suite.mockPartyRepo.On("FindPartyByTypeAndCode", suite.ctx, domain.Customer, "ACME").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPartyRepo.On("SaveParty", suite.ctx, mock.AnythingOfType("domain.Party")).
		Return(nil).Once()

	party, err := suite.service.CreateParty(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(party)
	suite.NotEmpty(party.PartyID)
	suite.True(party.IsActive)
	suite.Require().NotNil(party.CreditLimit)
	suite.True(party.CreditLimit.Equal(decimal.RequireFromString("5000.50")))
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreatePartyDropsUnparseableOptionalFields() {
	req := dto.CreatePartyRequest{
		PartyType:   domain.Employee,
		Name:        "Jordan Smith",
		Code:        "EMP-7",
		CreditLimit: "not-a-number",
		HireDate:    "March 3rd",
	}
	suite.mockPartyRepo.On("FindPartyByTypeAndCode", suite.ctx, domain.Employee, "EMP-7").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPartyRepo.On("SaveParty", suite.ctx, mock.AnythingOfType("domain.Party")).
		Return(nil).Once()

	party, err := suite.service.CreateParty(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Nil(party.CreditLimit)
	suite.Nil(party.HireDate)
}

func (suite *PartyServiceTestSuite) TestCreatePartyParsesHireDate() {
	req := dto.CreatePartyRequest{
		PartyType: domain.Employee,
		Name:      "Jordan Smith",
		Code:      "EMP-7",
		HireDate:  "2023-06-01",
	}
	suite.mockPartyRepo.On("FindPartyByTypeAndCode", suite.ctx, domain.Employee, "EMP-7").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPartyRepo.On("SaveParty", suite.ctx, mock.AnythingOfType("domain.Party")).
		Return(nil).Once()

	party, err := suite.service.CreateParty(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(party.HireDate)
	suite.Equal(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), *party.HireDate)
}

func (suite *PartyServiceTestSuite) TestCreatePartyDuplicateCodeWithinType() {
	req := dto.CreatePartyRequest{
		PartyType: domain.Customer,
		Name:      "Acme Corp",
		Code:      "ACME",
	}
	suite.mockPartyRepo.On("FindPartyByTypeAndCode", suite.ctx, domain.Customer, "ACME").
		Return(&suite.customer, nil).Once()

	_, err := suite.service.CreateParty(suite.ctx, req, "user-1")

	suite.Require().ErrorIs(err, services.ErrDuplicatePartyCode)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "SaveParty", mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestCreatePartyInvalidType() {
	req := dto.CreatePartyRequest{
		PartyType: domain.PartyType("SUPPLIER"),
		Name:      "Acme Corp",
		Code:      "ACME",
	}

	_, err := suite.service.CreateParty(suite.ctx, req, "user-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PartyServiceTestSuite) TestGetPartyByIDNotFound() {
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, "party-missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetPartyByID(suite.ctx, "party-missing")

	suite.Require().ErrorIs(err, services.ErrPartyNotFound)
}

func (suite *PartyServiceTestSuite) TestListPartiesAnnotatesBalances() {
	vendor := domain.Party{PartyID: "party-2", PartyType: domain.Vendor, Name: "Paper Supply", Code: "PAPER", IsActive: true}
	suite.mockPartyRepo.On("ListParties", suite.ctx, mock.AnythingOfType("repositories.PartyFilter"), 20, 0).
		Return([]domain.Party{suite.customer, vendor}, nil).Once()
	suite.mockReportingRepo.On("GetPartyBalances", suite.ctx, []string{"party-1", "party-2"}, (*time.Time)(nil), (*time.Time)(nil)).
		Return(map[string]decimal.Decimal{
			"party-1": decimal.NewFromInt(150),
			"party-2": decimal.Zero,
		}, nil).Once()

	result, err := suite.service.ListParties(suite.ctx, dto.ListPartiesParams{})

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].Balance.Equal(decimal.NewFromInt(150)))
	suite.True(result[1].Balance.IsZero())
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestListPartiesPagination() {
	suite.mockPartyRepo.On("ListParties", suite.ctx, mock.AnythingOfType("repositories.PartyFilter"), 10, 20).
		Return([]domain.Party{}, nil).Once()

	result, err := suite.service.ListParties(suite.ctx, dto.ListPartiesParams{Page: 3, Limit: 10})

	suite.Require().NoError(err)
	suite.Empty(result)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetPartyBalances", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestUpdatePartyDuplicateCode() {
	party := suite.customer
	other := domain.Party{PartyID: "party-9", PartyType: domain.Customer, Code: "MEGA"}
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, "party-1").
		Return(&party, nil).Once()
	suite.mockPartyRepo.On("FindPartyByTypeAndCode", suite.ctx, domain.Customer, "MEGA").
		Return(&other, nil).Once()
	newCode := "MEGA"

	_, err := suite.service.UpdateParty(suite.ctx, "party-1", dto.UpdatePartyRequest{Code: &newCode}, "user-1")

	suite.Require().ErrorIs(err, services.ErrDuplicatePartyCode)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "UpdateParty", mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestUpdatePartyPartialFields() {
	party := suite.customer
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, "party-1").
		Return(&party, nil).Once()
	suite.mockPartyRepo.On("UpdateParty", suite.ctx, mock.AnythingOfType("domain.Party")).
		Return(nil).Once()
	newEmail := "billing@acme.example"

	updated, err := suite.service.UpdateParty(suite.ctx, "party-1", dto.UpdatePartyRequest{Email: &newEmail}, "user-2")

	suite.Require().NoError(err)
	suite.Equal("billing@acme.example", updated.Email)
	suite.Equal("Acme Corp", updated.Name)
	suite.Equal("user-2", updated.LastUpdatedBy)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestDeactivateParty() {
	party := suite.customer
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, "party-1").
		Return(&party, nil).Once()
	suite.mockPartyRepo.On("DeactivateParty", suite.ctx, "party-1", "user-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeactivateParty(suite.ctx, "party-1", "user-1")

	suite.Require().NoError(err)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestDeactivatePartyNotFound() {
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, "party-missing").
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateParty(suite.ctx, "party-missing", "user-1")

	suite.Require().ErrorIs(err, services.ErrPartyNotFound)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "DeactivateParty", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPartyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}

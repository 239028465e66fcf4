package services_test

import (
	"context"
	"testing"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	ctx             context.Context

	parentAccount domain.Account
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.ctx = context.Background()

	suite.parentAccount = domain.Account{
		AccountID:   "acc-parent",
		AccountCode: "1000",
		AccountName: "Current Assets",
		Category:    domain.Asset,
		IsActive:    true,
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccountSuccess() {
	req := dto.CreateAccountRequest{
		AccountCode: "1010",
		AccountName: "Petty Cash",
		Category:    domain.Asset,
		AccountType: "CURRENT_ASSET",
	}
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1010").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("1010", account.AccountCode)
	suite.True(account.IsActive)
	suite.Equal("user-1", account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccountDuplicateCode() {
	req := dto.CreateAccountRequest{
		AccountCode: "1000",
		AccountName: "Current Assets",
		Category:    domain.Asset,
		AccountType: "CURRENT_ASSET",
	}
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").
		Return(&suite.parentAccount, nil).Once()

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().ErrorIs(err, services.ErrDuplicateCode)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccountInvalidCategory() {
	req := dto.CreateAccountRequest{
		AccountCode: "1010",
		AccountName: "Petty Cash",
		Category:    domain.AccountCategory("WEALTH"),
		AccountType: "CURRENT_ASSET",
	}

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccountParentNotFound() {
	parentID := "acc-missing"
	req := dto.CreateAccountRequest{
		AccountCode: "1010",
		AccountName: "Petty Cash",
		Category:    domain.Asset,
		AccountType: "CURRENT_ASSET",
		ParentID:    &parentID,
	}
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1010").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().ErrorIs(err, services.ErrParentNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountSelfParent() {
	account := suite.parentAccount
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-parent").
		Return(&account, nil).Once()
	selfID := "acc-parent"

	_, err := suite.service.UpdateAccount(suite.ctx, "acc-parent", dto.UpdateAccountRequest{ParentID: &selfID}, "user-1")

	suite.Require().ErrorIs(err, services.ErrSelfParent)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountDetachParent() {
	account := suite.parentAccount
	account.ParentID = "acc-grandparent"
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-parent").
		Return(&account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", suite.ctx, mock.AnythingOfType("domain.Account")).
		Return(nil).Once()
	empty := ""

	updated, err := suite.service.UpdateAccount(suite.ctx, "acc-parent", dto.UpdateAccountRequest{ParentID: &empty}, "user-1")

	suite.Require().NoError(err)
	suite.Empty(updated.ParentID)
	suite.Equal("user-1", updated.LastUpdatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccountDuplicateCode() {
	account := suite.parentAccount
	other := domain.Account{AccountID: "acc-other", AccountCode: "2000"}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-parent").
		Return(&account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "2000").
		Return(&other, nil).Once()
	newCode := "2000"

	_, err := suite.service.UpdateAccount(suite.ctx, "acc-parent", dto.UpdateAccountRequest{AccountCode: &newCode}, "user-1")

	suite.Require().ErrorIs(err, services.ErrDuplicateCode)
}

func (suite *AccountServiceTestSuite) TestListAccountsResolvesParents() {
	child := domain.Account{
		AccountID:   "acc-child",
		AccountCode: "1010",
		AccountName: "Petty Cash",
		Category:    domain.Asset,
		ParentID:    "acc-parent",
		IsActive:    true,
	}
	suite.mockAccountRepo.On("ListAccounts", suite.ctx, mock.AnythingOfType("repositories.AccountFilter")).
		Return([]domain.Account{suite.parentAccount, child}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"acc-parent"}).
		Return(map[string]domain.Account{"acc-parent": suite.parentAccount}, nil).Once()

	result, err := suite.service.ListAccounts(suite.ctx, dto.ListAccountsParams{})

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Nil(result[0].Parent)
	suite.Require().NotNil(result[1].Parent)
	suite.Equal("1000", result[1].Parent.AccountCode)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccountRefusedWithChildren() {
	account := suite.parentAccount
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-parent").
		Return(&account, nil).Once()
	suite.mockAccountRepo.On("CountChildren", suite.ctx, "acc-parent").
		Return(int64(2), nil).Once()

	outcome, err := suite.service.DeleteAccount(suite.ctx, "acc-parent", "user-1")

	suite.Require().ErrorIs(err, services.ErrHasChildren)
	suite.Empty(outcome)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccountWithPostingsDeactivates() {
	account := suite.parentAccount
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-parent").
		Return(&account, nil).Once()
	suite.mockAccountRepo.On("CountChildren", suite.ctx, "acc-parent").
		Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("CountPostings", suite.ctx, "1000").
		Return(int64(7), nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", suite.ctx, "acc-parent", "user-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	outcome, err := suite.service.DeleteAccount(suite.ctx, "acc-parent", "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AccountDeactivated, outcome)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccountWithoutReferencesDeletes() {
	account := suite.parentAccount
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-parent").
		Return(&account, nil).Once()
	suite.mockAccountRepo.On("CountChildren", suite.ctx, "acc-parent").
		Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("CountPostings", suite.ctx, "1000").
		Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", suite.ctx, "acc-parent").
		Return(nil).Once()

	outcome, err := suite.service.DeleteAccount(suite.ctx, "acc-parent", "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AccountDeleted, outcome)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListCashAccounts() {
	cash := domain.Account{AccountID: "acc-cash", AccountCode: "1010", SubType: domain.CashSubType}
	suite.mockAccountRepo.On("ListCashAccounts", suite.ctx).
		Return([]domain.Account{cash}, nil).Once()

	result, err := suite.service.ListCashAccounts(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(domain.CashSubType, result[0].SubType)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockPartyRepo     *MockPartyRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.BalanceSvcFacade
	ctx               context.Context
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewBalanceService(suite.mockAccountRepo, suite.mockPartyRepo, suite.mockReportingRepo)
	suite.ctx = context.Background()
}

// categoryFilter matches an account listing filtered to one category.
func categoryFilter(category domain.AccountCategory) interface{} {
	return mock.MatchedBy(func(f portsrepo.AccountFilter) bool {
		return f.Category != nil && *f.Category == category
	})
}

func (suite *BalanceServiceTestSuite) TestGetAccountBalanceDebitMinusCredit() {
	account := &domain.Account{AccountID: "acc-1", AccountCode: "1010", AccountName: "Cash", Category: domain.Asset, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1010").Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", suite.ctx, "1010", (*time.Time)(nil)).
		Return(decimal.NewFromInt(500), decimal.NewFromInt(120), nil).Once()

	row, err := suite.service.GetAccountBalance(suite.ctx, "1010", nil)

	suite.Require().NoError(err)
	suite.True(row.Balance.Equal(decimal.NewFromInt(380)))
	suite.True(row.Debit.Equal(decimal.NewFromInt(500)))
	suite.True(row.Credit.Equal(decimal.NewFromInt(120)))
}

func (suite *BalanceServiceTestSuite) TestGetAccountBalanceCreditNormalGoesNegative() {
	// The single-account balance keeps the uniform debit-minus-credit sign,
	// so a revenue account with mostly credits reports a negative balance.
	account := &domain.Account{AccountID: "acc-2", AccountCode: "4000", AccountName: "Sales", Category: domain.Revenue, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "4000").Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", suite.ctx, "4000", (*time.Time)(nil)).
		Return(decimal.NewFromInt(30), decimal.NewFromInt(200), nil).Once()

	row, err := suite.service.GetAccountBalance(suite.ctx, "4000", nil)

	suite.Require().NoError(err)
	suite.True(row.Balance.Equal(decimal.NewFromInt(-170)))
}

func (suite *BalanceServiceTestSuite) TestGetAccountBalanceUnknownCode() {
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "0000").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountBalance(suite.ctx, "0000", nil)

	suite.Require().ErrorIs(err, services.ErrAccountNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetAccountActivity", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestGetTrialBalance() {
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1010", AccountName: "Cash", Category: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountCode: "4000", AccountName: "Sales", Category: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", suite.ctx, (*time.Time)(nil)).Return(rows, nil).Once()

	tb, err := suite.service.GetTrialBalance(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.Require().Len(tb.Rows, 2)
	// Every row is debit minus credit, regardless of category.
	suite.True(tb.Rows[0].Balance.Equal(decimal.NewFromInt(500)))
	suite.True(tb.Rows[1].Balance.Equal(decimal.NewFromInt(-500)))
	suite.True(tb.TotalDebit.Equal(decimal.NewFromInt(500)))
	suite.True(tb.TotalCredit.Equal(decimal.NewFromInt(500)))
	suite.True(tb.IsBalanced)
}

func (suite *BalanceServiceTestSuite) TestGetTrialBalanceCashSale() {
	// One cash sale: Cash debited 100, Revenue credited 100. The report
	// shows +100 against Cash and -100 against Revenue, and balances.
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1000", AccountName: "Cash", Category: domain.Asset, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{AccountCode: "4000", AccountName: "Revenue", Category: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", suite.ctx, (*time.Time)(nil)).Return(rows, nil).Once()

	tb, err := suite.service.GetTrialBalance(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.Require().Len(tb.Rows, 2)
	suite.True(tb.Rows[0].Balance.Equal(decimal.NewFromInt(100)))
	suite.True(tb.Rows[1].Balance.Equal(decimal.NewFromInt(-100)))
	suite.True(tb.IsBalanced)
}

func (suite *BalanceServiceTestSuite) TestGetTrialBalanceDetectsImbalance() {
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1010", Category: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountCode: "4000", Category: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(300)},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", suite.ctx, (*time.Time)(nil)).Return(rows, nil).Once()

	tb, err := suite.service.GetTrialBalance(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.False(tb.IsBalanced)
}

func (suite *BalanceServiceTestSuite) TestGetTrialBalanceEmptyLedger() {
	suite.mockReportingRepo.On("GetTrialBalanceData", suite.ctx, (*time.Time)(nil)).
		Return([]domain.TrialBalanceRow{}, nil).Once()

	tb, err := suite.service.GetTrialBalance(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.Empty(tb.Rows)
	suite.True(tb.IsBalanced)
}

func (suite *BalanceServiceTestSuite) TestGetPartyBalance() {
	customer := &domain.Party{PartyID: "party-1", PartyType: domain.Customer, Name: "Acme Corp", IsActive: true}
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, "party-1").Return(customer, nil).Once()
	suite.mockReportingRepo.On("GetPartyBalances", suite.ctx, []string{"party-1"}, (*time.Time)(nil), (*time.Time)(nil)).
		Return(map[string]decimal.Decimal{"party-1": decimal.NewFromInt(150)}, nil).Once()

	result, err := suite.service.GetPartyBalance(suite.ctx, "party-1", nil, nil)

	suite.Require().NoError(err)
	suite.True(result.Balance.Equal(decimal.NewFromInt(150)))
	suite.Equal("Acme Corp", result.Name)
}

func (suite *BalanceServiceTestSuite) TestGetPartyStatementCustomerRunningBalance() {
	customer := &domain.Party{PartyID: "party-1", PartyType: domain.Customer, Name: "Acme Corp", IsActive: true}
	postings := []domain.PartyPosting{
		{
			JournalDate:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			JournalDescription: "Invoice #1",
			Debit:              decimal.NewFromInt(100),
			Credit:             decimal.Zero,
		},
		{
			JournalDate:        time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
			JournalDescription: "Receipt batch",
			LineDescription:    "Payment received",
			Debit:              decimal.Zero,
			Credit:             decimal.NewFromInt(40),
		},
	}
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, "party-1").Return(customer, nil).Once()
	suite.mockReportingRepo.On("GetPartyPostings", suite.ctx, "party-1", (*time.Time)(nil), (*time.Time)(nil)).
		Return(postings, nil).Once()

	party, statement, err := suite.service.GetPartyStatement(suite.ctx, "party-1", nil, nil)

	suite.Require().NoError(err)
	suite.Equal("Acme Corp", party.Name)
	suite.Require().Len(statement.Lines, 2)
	// Customers accumulate debit minus credit.
	suite.True(statement.Lines[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	suite.True(statement.Lines[1].RunningBalance.Equal(decimal.NewFromInt(60)))
	// Line memo falls back to the journal description when empty.
	suite.Equal("Invoice #1", statement.Lines[0].Memo)
	suite.Equal("Payment received", statement.Lines[1].Memo)
	suite.True(statement.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(statement.TotalCredit.Equal(decimal.NewFromInt(40)))
	suite.True(statement.EndingBalance.Equal(decimal.NewFromInt(60)))
}

func (suite *BalanceServiceTestSuite) TestGetPartyStatementVendorRunningBalance() {
	vendor := &domain.Party{PartyID: "party-2", PartyType: domain.Vendor, Name: "Paper Supply", IsActive: true}
	postings := []domain.PartyPosting{
		{JournalDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), JournalDescription: "Bill #88", Credit: decimal.NewFromInt(300), Debit: decimal.Zero},
		{JournalDate: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), JournalDescription: "Payment run", Debit: decimal.NewFromInt(120), Credit: decimal.Zero},
	}
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, "party-2").Return(vendor, nil).Once()
	suite.mockReportingRepo.On("GetPartyPostings", suite.ctx, "party-2", (*time.Time)(nil), (*time.Time)(nil)).
		Return(postings, nil).Once()

	_, statement, err := suite.service.GetPartyStatement(suite.ctx, "party-2", nil, nil)

	suite.Require().NoError(err)
	// Vendors accumulate credit minus debit.
	suite.True(statement.Lines[0].RunningBalance.Equal(decimal.NewFromInt(300)))
	suite.True(statement.Lines[1].RunningBalance.Equal(decimal.NewFromInt(180)))
	suite.True(statement.EndingBalance.Equal(decimal.NewFromInt(180)))
}

func (suite *BalanceServiceTestSuite) TestGetPartyStatementUnknownParty() {
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, "party-missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.GetPartyStatement(suite.ctx, "party-missing", nil, nil)

	suite.Require().ErrorIs(err, services.ErrPartyNotFound)
}

func (suite *BalanceServiceTestSuite) TestGetBalanceSheet() {
	currentAssets := domain.Account{AccountID: "acc-1", AccountCode: "1000", AccountName: "Current Assets", Category: domain.Asset, IsActive: true}
	cash := domain.Account{AccountID: "acc-2", AccountCode: "1010", AccountName: "Cash", Category: domain.Asset, ParentID: "acc-1", IsActive: true}
	idleEquipment := domain.Account{AccountID: "acc-3", AccountCode: "1500", AccountName: "Old Equipment", Category: domain.Asset, IsActive: true}
	loans := domain.Account{AccountID: "acc-4", AccountCode: "2000", AccountName: "Loans", Category: domain.Liability, IsActive: true}
	ownerEquity := domain.Account{AccountID: "acc-5", AccountCode: "3000", AccountName: "Owner Equity", Category: domain.Equity, IsActive: true}

	suite.mockAccountRepo.On("ListAccounts", suite.ctx, categoryFilter(domain.Asset)).
		Return([]domain.Account{currentAssets, cash, idleEquipment}, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", suite.ctx, categoryFilter(domain.Liability)).
		Return([]domain.Account{loans}, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", suite.ctx, categoryFilter(domain.Equity)).
		Return([]domain.Account{ownerEquity}, nil).Once()

	suite.mockReportingRepo.On("GetCategoryActivity", suite.ctx, domain.Asset, (*time.Time)(nil), (*time.Time)(nil)).
		Return(map[string]domain.AccountActivity{
			"1010": {AccountCode: "1010", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		}, nil).Once()
	suite.mockReportingRepo.On("GetCategoryActivity", suite.ctx, domain.Liability, (*time.Time)(nil), (*time.Time)(nil)).
		Return(map[string]domain.AccountActivity{
			"2000": {AccountCode: "2000", Debit: decimal.Zero, Credit: decimal.NewFromInt(200)},
		}, nil).Once()
	suite.mockReportingRepo.On("GetCategoryActivity", suite.ctx, domain.Equity, (*time.Time)(nil), (*time.Time)(nil)).
		Return(map[string]domain.AccountActivity{
			"3000": {AccountCode: "3000", Debit: decimal.Zero, Credit: decimal.NewFromInt(200)},
		}, nil).Once()
	suite.mockReportingRepo.On("GetCategoryActivity", suite.ctx, domain.Revenue, (*time.Time)(nil), (*time.Time)(nil)).
		Return(map[string]domain.AccountActivity{
			"4000": {AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.NewFromInt(150)},
		}, nil).Once()
	suite.mockReportingRepo.On("GetCategoryActivity", suite.ctx, domain.Expense, (*time.Time)(nil), (*time.Time)(nil)).
		Return(map[string]domain.AccountActivity{
			"5000": {AccountCode: "5000", Debit: decimal.NewFromInt(50), Credit: decimal.Zero},
		}, nil).Once()

	bs, err := suite.service.GetBalanceSheet(suite.ctx, nil)

	suite.Require().NoError(err)
	// Cash rolls up under Current Assets; the zero-activity leaf is pruned.
	suite.Require().Len(bs.Assets, 1)
	suite.Equal("1000", bs.Assets[0].AccountCode)
	suite.True(bs.Assets[0].Total.Equal(decimal.NewFromInt(500)))
	suite.Require().Len(bs.Assets[0].Children, 1)
	suite.Equal("1010", bs.Assets[0].Children[0].AccountCode)

	suite.True(bs.TotalAssets.Equal(decimal.NewFromInt(500)))
	suite.True(bs.TotalLiabilities.Equal(decimal.NewFromInt(200)))
	suite.True(bs.NetIncome.Equal(decimal.NewFromInt(100)))
	// Equity folds in net income, so the sheet balances.
	suite.True(bs.TotalEquity.Equal(decimal.NewFromInt(300)))
	suite.True(bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity)))
}

func (suite *BalanceServiceTestSuite) TestGetIncomeStatementContraRevenue() {
	sales := domain.Account{AccountID: "acc-1", AccountCode: "4000", AccountName: "Sales", Category: domain.Revenue, IsActive: true}
	discounts := domain.Account{AccountID: "acc-2", AccountCode: "4900", AccountName: "Sales Discounts", Category: domain.Revenue, IsActive: true}
	rent := domain.Account{AccountID: "acc-3", AccountCode: "5000", AccountName: "Rent", Category: domain.Expense, IsActive: true}

	suite.mockAccountRepo.On("ListAccounts", suite.ctx, categoryFilter(domain.Revenue)).
		Return([]domain.Account{sales, discounts}, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", suite.ctx, categoryFilter(domain.Expense)).
		Return([]domain.Account{rent}, nil).Once()

	// Called once for the rollup and once for net income.
	suite.mockReportingRepo.On("GetCategoryActivity", suite.ctx, domain.Revenue, (*time.Time)(nil), (*time.Time)(nil)).
		Return(map[string]domain.AccountActivity{
			"4000": {AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
			"4900": {AccountCode: "4900", Debit: decimal.NewFromInt(40), Credit: decimal.Zero},
		}, nil).Twice()
	suite.mockReportingRepo.On("GetCategoryActivity", suite.ctx, domain.Expense, (*time.Time)(nil), (*time.Time)(nil)).
		Return(map[string]domain.AccountActivity{
			"5000": {AccountCode: "5000", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		}, nil).Twice()

	is, err := suite.service.GetIncomeStatement(suite.ctx, nil, nil)

	suite.Require().NoError(err)
	// Display totals are absolute, so the contra account adds to the rollup.
	suite.True(is.TotalRevenue.Equal(decimal.NewFromInt(540)))
	suite.True(is.TotalExpenses.Equal(decimal.NewFromInt(100)))
	// Net income nets the contra account against revenue: 500 - 40 - 100.
	suite.True(is.NetIncome.Equal(decimal.NewFromInt(360)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

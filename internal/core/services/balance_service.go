package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService derives balances and reports from committed journal lines.
// Nothing here writes; every figure is recomputed from the ledger on demand.
type balanceService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	partyRepo     portsrepo.PartyReader
	reportingRepo portsrepo.ReportingRepository
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(accountRepo portsrepo.AccountReader, partyRepo portsrepo.PartyReader, reportingRepo portsrepo.ReportingRepository) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountRepo:   accountRepo,
		partyRepo:     partyRepo,
		reportingRepo: reportingRepo,
	}
}

// Ensure balanceService implements the portssvc.BalanceSvcFacade interface
var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetAccountBalance returns one account's aggregate activity as of the
// given date. Balance is debit minus credit for every account, so
// credit-normal accounts report negative balances.
func (s *balanceService) GetAccountBalance(ctx context.Context, accountCode string, asOf *time.Time) (*domain.TrialBalanceRow, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: code %s", ErrAccountNotFound, accountCode)
		}
		return nil, err
	}

	debit, credit, err := s.reportingRepo.GetAccountActivity(ctx, accountCode, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity")
		return nil, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	return &domain.TrialBalanceRow{
		AccountCode: account.AccountCode,
		AccountName: account.AccountName,
		Category:    account.Category,
		Debit:       debit,
		Credit:      credit,
		Balance:     debit.Sub(credit),
	}, nil
}

// GetTrialBalance returns per-account totals for every account with
// activity as of the given date. Accounts without postings are omitted, so
// a fresh ledger yields an empty, balanced report.
func (s *balanceService) GetTrialBalance(ctx context.Context, asOf *time.Time) (*domain.TrialBalance, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch trial balance data")
		return nil, fmt.Errorf("failed to fetch trial balance data: %w", err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i := range rows {
		rows[i].Balance = rows[i].Debit.Sub(rows[i].Credit)
		totalDebit = totalDebit.Add(rows[i].Debit)
		totalCredit = totalCredit.Add(rows[i].Credit)
	}

	return &domain.TrialBalance{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		IsBalanced:  accounting.WithinTolerance(totalDebit, totalCredit),
	}, nil
}

// GetPartyBalance returns a party with its signed balance over [from, to].
func (s *balanceService) GetPartyBalance(ctx context.Context, partyID string, from, to *time.Time) (*domain.PartyWithBalance, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrPartyNotFound, partyID)
		}
		return nil, err
	}

	balances, err := s.reportingRepo.GetPartyBalances(ctx, []string{partyID}, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute party balance")
		return nil, fmt.Errorf("failed to compute party balance: %w", err)
	}

	return &domain.PartyWithBalance{Party: *party, Balance: balances[partyID]}, nil
}

// GetPartyStatement returns the chronological statement for a party. Lines
// accumulate a running balance using the party-type sign convention; the
// memo falls back to the journal description when the line has none.
func (s *balanceService) GetPartyStatement(ctx context.Context, partyID string, from, to *time.Time) (*domain.Party, *domain.PartyStatement, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: ID %s", ErrPartyNotFound, partyID)
		}
		return nil, nil, err
	}

	postings, err := s.reportingRepo.GetPartyPostings(ctx, partyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch party postings")
		return nil, nil, fmt.Errorf("failed to fetch party postings: %w", err)
	}

	statement := &domain.PartyStatement{
		PartyID:       partyID,
		Lines:         make([]domain.StatementLine, 0, len(postings)),
		TotalDebit:    decimal.Zero,
		TotalCredit:   decimal.Zero,
		EndingBalance: decimal.Zero,
	}

	running := decimal.Zero
	for _, posting := range postings {
		contribution, err := accounting.PartyContribution(party.PartyType, posting.Debit, posting.Credit)
		if err != nil {
			return nil, nil, err
		}
		running = running.Add(contribution)

		memo := posting.LineDescription
		if memo == "" {
			memo = posting.JournalDescription
		}

		statement.Lines = append(statement.Lines, domain.StatementLine{
			Date:           posting.JournalDate,
			Memo:           memo,
			Debit:          posting.Debit,
			Credit:         posting.Credit,
			RunningBalance: running,
		})
		statement.TotalDebit = statement.TotalDebit.Add(posting.Debit)
		statement.TotalCredit = statement.TotalCredit.Add(posting.Credit)
	}
	statement.EndingBalance = running

	return party, statement, nil
}

// categoryRollup builds the rollup forest for one category. Each node's
// total is its own absolute balance plus the totals of its children; nodes
// with a zero total and no visible children are pruned.
func (s *balanceService) categoryRollup(ctx context.Context, category domain.AccountCategory, from, to *time.Time) ([]domain.RollupNode, decimal.Decimal, error) {
	filter := portsrepo.AccountFilter{Category: &category}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to list %s accounts: %w", category, err)
	}

	activity, err := s.reportingRepo.GetCategoryActivity(ctx, category, from, to)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to aggregate %s activity: %w", category, err)
	}

	byID := make(map[string]*domain.Account, len(accounts))
	childIDs := make(map[string][]string)
	roots := make([]string, 0)
	for i := range accounts {
		byID[accounts[i].AccountID] = &accounts[i]
	}
	for i := range accounts {
		acc := &accounts[i]
		if acc.ParentID != "" {
			if _, ok := byID[acc.ParentID]; ok {
				childIDs[acc.ParentID] = append(childIDs[acc.ParentID], acc.AccountID)
				continue
			}
		}
		// No parent, or a parent outside this category: treat as a root.
		roots = append(roots, acc.AccountID)
	}

	var build func(accountID string) (*domain.RollupNode, error)
	build = func(accountID string) (*domain.RollupNode, error) {
		acc := byID[accountID]
		own := decimal.Zero
		if act, ok := activity[acc.AccountCode]; ok {
			balance, err := accounting.NaturalBalance(category, act.Debit, act.Credit)
			if err != nil {
				return nil, err
			}
			own = balance.Abs()
		}

		node := domain.RollupNode{
			AccountID:   acc.AccountID,
			AccountCode: acc.AccountCode,
			AccountName: acc.AccountName,
			Total:       own,
		}
		for _, childID := range childIDs[accountID] {
			child, err := build(childID)
			if err != nil {
				return nil, err
			}
			if child != nil {
				node.Children = append(node.Children, *child)
				node.Total = node.Total.Add(child.Total)
			}
		}
		if node.Total.IsZero() && len(node.Children) == 0 {
			return nil, nil
		}
		return &node, nil
	}

	forest := make([]domain.RollupNode, 0)
	total := decimal.Zero
	for _, rootID := range roots {
		node, err := build(rootID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if node != nil {
			forest = append(forest, *node)
			total = total.Add(node.Total)
		}
	}
	return forest, total, nil
}

// netIncome computes revenue minus expenses over the period, each side in
// its natural sign.
func (s *balanceService) netIncome(ctx context.Context, from, to *time.Time) (revenue, expenses decimal.Decimal, err error) {
	revenueActivity, err := s.reportingRepo.GetCategoryActivity(ctx, domain.Revenue, from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to aggregate revenue activity: %w", err)
	}
	expenseActivity, err := s.reportingRepo.GetCategoryActivity(ctx, domain.Expense, from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to aggregate expense activity: %w", err)
	}

	revenue = decimal.Zero
	for _, act := range revenueActivity {
		balance, err := accounting.NaturalBalance(domain.Revenue, act.Debit, act.Credit)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		revenue = revenue.Add(balance)
	}
	expenses = decimal.Zero
	for _, act := range expenseActivity {
		balance, err := accounting.NaturalBalance(domain.Expense, act.Debit, act.Credit)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		expenses = expenses.Add(balance)
	}
	return revenue, expenses, nil
}

// GetBalanceSheet returns the hierarchical balance sheet as of a date.
// Total equity folds in net income to date, so a balanced ledger shows
// assets equal to liabilities plus equity.
func (s *balanceService) GetBalanceSheet(ctx context.Context, asOf *time.Time) (*domain.BalanceSheet, error) {
	assets, totalAssets, err := s.categoryRollup(ctx, domain.Asset, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to build asset rollup")
		return nil, err
	}
	liabilities, totalLiabilities, err := s.categoryRollup(ctx, domain.Liability, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to build liability rollup")
		return nil, err
	}
	equity, totalEquity, err := s.categoryRollup(ctx, domain.Equity, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to build equity rollup")
		return nil, err
	}

	revenue, expenses, err := s.netIncome(ctx, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute net income")
		return nil, err
	}
	netIncome := revenue.Sub(expenses)

	return &domain.BalanceSheet{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity.Add(netIncome),
		NetIncome:        netIncome,
	}, nil
}

// GetIncomeStatement returns the hierarchical income statement over a period.
func (s *balanceService) GetIncomeStatement(ctx context.Context, from, to *time.Time) (*domain.IncomeStatement, error) {
	revenueNodes, totalRevenue, err := s.categoryRollup(ctx, domain.Revenue, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to build revenue rollup")
		return nil, err
	}
	expenseNodes, totalExpenses, err := s.categoryRollup(ctx, domain.Expense, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to build expense rollup")
		return nil, err
	}

	// Net income uses natural signs so contra accounts subtract correctly,
	// while the rollup totals stay absolute for display.
	revenue, expenses, err := s.netIncome(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute net income")
		return nil, err
	}

	return &domain.IncomeStatement{
		Revenue:       revenueNodes,
		Expenses:      expenseNodes,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetIncome:     revenue.Sub(expenses),
	}, nil
}

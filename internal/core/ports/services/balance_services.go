package services

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// BalanceSvcFacade defines the read-side balance and reporting operations.
// All balances derive from committed journal lines; nothing is cached.
type BalanceSvcFacade interface {
	// GetAccountBalance returns one account's aggregate activity and its
	// debit-minus-credit balance as of the given date.
	GetAccountBalance(ctx context.Context, accountCode string, asOf *time.Time) (*domain.TrialBalanceRow, error)

	// GetTrialBalance returns per-account totals for every account with
	// activity, plus grand totals, as of the given date.
	GetTrialBalance(ctx context.Context, asOf *time.Time) (*domain.TrialBalance, error)

	// GetPartyBalance returns a party with its signed balance over [from, to].
	GetPartyBalance(ctx context.Context, partyID string, from, to *time.Time) (*domain.PartyWithBalance, error)

	// GetPartyStatement returns the chronological statement for a party
	// over [from, to], with a running balance per line.
	GetPartyStatement(ctx context.Context, partyID string, from, to *time.Time) (*domain.Party, *domain.PartyStatement, error)

	// GetBalanceSheet returns the hierarchical balance sheet as of a date.
	GetBalanceSheet(ctx context.Context, asOf *time.Time) (*domain.BalanceSheet, error)

	// GetIncomeStatement returns the hierarchical income statement over a period.
	GetIncomeStatement(ctx context.Context, from, to *time.Time) (*domain.IncomeStatement, error)
}

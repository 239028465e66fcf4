package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines aggregate read operations for the balance
// engine. All methods are pure reads over committed ledger state; nil date
// bounds mean unbounded.
type ReportingRepository interface {
	// GetAccountActivity returns aggregate debit and credit totals for one
	// account, over journals dated up to asOf.
	GetAccountActivity(ctx context.Context, accountCode string, asOf *time.Time) (debit, credit decimal.Decimal, err error)

	// GetTrialBalanceData returns per-account totals for every active
	// account with activity up to asOf, ordered by account code ascending.
	GetTrialBalanceData(ctx context.Context, asOf *time.Time) ([]domain.TrialBalanceRow, error)

	// GetCategoryActivity returns per-account totals for every account of
	// the category with activity in [from, to], keyed by account code.
	GetCategoryActivity(ctx context.Context, category domain.AccountCategory, from, to *time.Time) (map[string]domain.AccountActivity, error)

	// GetPartyPostings returns the postings attributed to a party within
	// [from, to], ordered by the owning journal's (date, createdAt) ascending.
	GetPartyPostings(ctx context.Context, partyID string, from, to *time.Time) ([]domain.PartyPosting, error)

	// GetPartyBalances returns the signed balance for each given party,
	// applying the per-type direction formula in the aggregate itself.
	// Parties with no postings map to zero.
	GetPartyBalances(ctx context.Context, partyIDs []string, from, to *time.Time) (map[string]decimal.Decimal, error)
}

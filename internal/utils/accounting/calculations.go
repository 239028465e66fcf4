package accounting

import (
	"fmt"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the documented business rule for calling two money
// totals equal. It is not a crutch for representation error: all amounts
// are exact decimals.
var BalanceTolerance = decimal.New(1, -2) // 0.01

// WithinTolerance reports whether |a - b| < BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(BalanceTolerance)
}

// PartyContribution returns the signed contribution of one posting to a
// party's balance. Customers accumulate debit-credit (receivable grows on
// debit); vendors and employees accumulate credit-debit (payable grows on
// credit).
func PartyContribution(partyType domain.PartyType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch partyType {
	case domain.Customer:
		return debit.Sub(credit), nil
	case domain.Vendor, domain.Employee:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown party type %q", partyType)
	}
}

// NaturalBalance returns an account's balance in its natural sign: assets
// and expenses grow on debit, liabilities, equity and revenue on credit.
func NaturalBalance(category domain.AccountCategory, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch category {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account category %q", category)
	}
}

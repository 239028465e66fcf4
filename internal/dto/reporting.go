package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceResponse reports one account's aggregate activity and balance.
type AccountBalanceResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    string          `json:"category"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
	AsOf        *time.Time      `json:"asOf,omitempty"`
}

// TrialBalanceRowResponse is one row of the trial balance report.
type TrialBalanceRowResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    string          `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse is the full trial balance report.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
	IsBalanced  bool                      `json:"isBalanced"`
	AsOf        *time.Time                `json:"asOf,omitempty"`
}

// PartyBalanceResponse reports a single party's signed balance.
type PartyBalanceResponse struct {
	PartyID   string          `json:"partyID"`
	PartyType string          `json:"partyType"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	From      *time.Time      `json:"from,omitempty"`
	To        *time.Time      `json:"to,omitempty"`
}

// StatementLineResponse is one row of a party statement.
type StatementLineResponse struct {
	Date           time.Time       `json:"date"`
	Memo           string          `json:"memo"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// PartyStatementResponse is the chronological statement for one party.
type PartyStatementResponse struct {
	PartyID       string                  `json:"partyID"`
	PartyType     string                  `json:"partyType"`
	Name          string                  `json:"name"`
	Lines         []StatementLineResponse `json:"lines"`
	TotalDebit    decimal.Decimal         `json:"totalDebit"`
	TotalCredit   decimal.Decimal         `json:"totalCredit"`
	EndingBalance decimal.Decimal         `json:"endingBalance"`
}

// RollupNodeResponse is one node of a hierarchical category rollup.
type RollupNodeResponse struct {
	AccountID   string               `json:"accountID"`
	AccountCode string               `json:"accountCode"`
	AccountName string               `json:"accountName"`
	Total       decimal.Decimal      `json:"total"`
	Children    []RollupNodeResponse `json:"children,omitempty"`
}

// BalanceSheetResponse is the balance sheet report.
type BalanceSheetResponse struct {
	Assets           []RollupNodeResponse `json:"assets"`
	Liabilities      []RollupNodeResponse `json:"liabilities"`
	Equity           []RollupNodeResponse `json:"equity"`
	TotalAssets      decimal.Decimal      `json:"totalAssets"`
	TotalLiabilities decimal.Decimal      `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal      `json:"totalEquity"`
	NetIncome        decimal.Decimal      `json:"netIncome"`
	AsOf             *time.Time           `json:"asOf,omitempty"`
}

// IncomeStatementResponse is the income statement report.
type IncomeStatementResponse struct {
	Revenue       []RollupNodeResponse `json:"revenue"`
	Expenses      []RollupNodeResponse `json:"expenses"`
	TotalRevenue  decimal.Decimal      `json:"totalRevenue"`
	TotalExpenses decimal.Decimal      `json:"totalExpenses"`
	NetIncome     decimal.Decimal      `json:"netIncome"`
	From          *time.Time           `json:"from,omitempty"`
	To            *time.Time           `json:"to,omitempty"`
}

// DateRangeParams are the optional reporting period bounds.
type DateRangeParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// AsOfParams is the optional point-in-time bound for stock reports.
type AsOfParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// ToRollupNodeResponses converts a rollup forest to its DTO form.
func ToRollupNodeResponses(nodes []domain.RollupNode) []RollupNodeResponse {
	res := make([]RollupNodeResponse, len(nodes))
	for i := range nodes {
		res[i] = RollupNodeResponse{
			AccountID:   nodes[i].AccountID,
			AccountCode: nodes[i].AccountCode,
			AccountName: nodes[i].AccountName,
			Total:       nodes[i].Total,
			Children:    ToRollupNodeResponses(nodes[i].Children),
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

// ToTrialBalanceResponse converts the domain trial balance report.
func ToTrialBalanceResponse(tb *domain.TrialBalance, asOf *time.Time) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountCode: r.AccountCode,
			AccountName: r.AccountName,
			Category:    string(r.Category),
			Debit:       r.Debit,
			Credit:      r.Credit,
			Balance:     r.Balance,
		}
	}
	return TrialBalanceResponse{
		Rows:        rows,
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
		IsBalanced:  tb.IsBalanced,
		AsOf:        asOf,
	}
}

// ToBalanceSheetResponse converts the domain balance sheet report.
func ToBalanceSheetResponse(bs *domain.BalanceSheet, asOf *time.Time) BalanceSheetResponse {
	return BalanceSheetResponse{
		Assets:           ToRollupNodeResponses(bs.Assets),
		Liabilities:      ToRollupNodeResponses(bs.Liabilities),
		Equity:           ToRollupNodeResponses(bs.Equity),
		TotalAssets:      bs.TotalAssets,
		TotalLiabilities: bs.TotalLiabilities,
		TotalEquity:      bs.TotalEquity,
		NetIncome:        bs.NetIncome,
		AsOf:             asOf,
	}
}

// ToIncomeStatementResponse converts the domain income statement report.
func ToIncomeStatementResponse(is *domain.IncomeStatement, from, to *time.Time) IncomeStatementResponse {
	return IncomeStatementResponse{
		Revenue:       ToRollupNodeResponses(is.Revenue),
		Expenses:      ToRollupNodeResponses(is.Expenses),
		TotalRevenue:  is.TotalRevenue,
		TotalExpenses: is.TotalExpenses,
		NetIncome:     is.NetIncome,
		From:          from,
		To:            to,
	}
}

// ToPartyStatementResponse converts the domain party statement.
func ToPartyStatementResponse(p *domain.Party, st *domain.PartyStatement) PartyStatementResponse {
	lines := make([]StatementLineResponse, len(st.Lines))
	for i, l := range st.Lines {
		lines[i] = StatementLineResponse{
			Date:           l.Date,
			Memo:           l.Memo,
			Debit:          l.Debit,
			Credit:         l.Credit,
			RunningBalance: l.RunningBalance,
		}
	}
	return PartyStatementResponse{
		PartyID:       p.PartyID,
		PartyType:     string(p.PartyType),
		Name:          p.Name,
		Lines:         lines,
		TotalDebit:    st.TotalDebit,
		TotalCredit:   st.TotalCredit,
		EndingBalance: st.EndingBalance,
	}
}

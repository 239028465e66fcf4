package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity holds the aggregate debit/credit totals for one account.
// Balance is always debit minus credit, regardless of category.
type AccountActivity struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    AccountCategory `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalance is the full report: rows for every active account with
// activity, plus totals across the returned rows.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// PartyPosting is a journal line joined with its owning journal header,
// as fetched for party statements and party balances.
type PartyPosting struct {
	JournalDate        time.Time       `json:"journalDate"`
	JournalDescription string          `json:"journalDescription"`
	LineDescription    string          `json:"lineDescription"`
	Debit              decimal.Decimal `json:"debit"`
	Credit             decimal.Decimal `json:"credit"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// StatementLine is one row of a party statement with the running balance
// accumulated in (journal date, createdAt) order.
type StatementLine struct {
	Date           time.Time       `json:"date"`
	Memo           string          `json:"memo"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// PartyStatement is the ordered statement for a single party.
type PartyStatement struct {
	PartyID       string          `json:"partyID"`
	Lines         []StatementLine `json:"lines"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	EndingBalance decimal.Decimal `json:"endingBalance"`
}

// RollupNode is one node of a hierarchical category report. Total is the
// node's own absolute balance plus the rolled-up totals of its children.
type RollupNode struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Total       decimal.Decimal `json:"total"`
	Children    []RollupNode    `json:"children,omitempty"`
}

// BalanceSheet is the as-of hierarchical report over asset, liability and
// equity accounts. TotalEquity includes net income to date.
type BalanceSheet struct {
	Assets           []RollupNode    `json:"assets"`
	Liabilities      []RollupNode    `json:"liabilities"`
	Equity           []RollupNode    `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	NetIncome        decimal.Decimal `json:"netIncome"`
}

// IncomeStatement is the period hierarchical report over revenue and
// expense accounts.
type IncomeStatement struct {
	Revenue       []RollupNode    `json:"revenue"`
	Expenses      []RollupNode    `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

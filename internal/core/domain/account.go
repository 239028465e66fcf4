package domain

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// ValidCategories lists every recognized account category.
var ValidCategories = []AccountCategory{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether c is a recognized category.
func (c AccountCategory) IsValid() bool {
	switch c {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// CashSubType marks accounts that count as cash equivalents for cash reporting.
const CashSubType = "Checking & Saving"

// Account represents one node of the chart of accounts.
// AccountCode is the stable human-facing key that journal lines post against.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary key (UUID)
	AccountCode string          `json:"accountCode"` // Globally unique short code, FK surface for postings
	AccountName string          `json:"accountName"`
	Category    AccountCategory `json:"category"`
	AccountType string          `json:"accountType"` // Category-scoped sub-classification, e.g. CURRENT_ASSET
	SubType     string          `json:"subType"`     // Optional free text; CashSubType flags cash equivalents
	ParentID    string          `json:"parentID"`    // Optional self-reference forming a tree
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// AccountRef is the parent summary resolved onto listed accounts for display.
type AccountRef struct {
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
}

// AccountWithParent pairs an account with its resolved parent, if any.
type AccountWithParent struct {
	Account
	Parent *AccountRef `json:"parent,omitempty"`
}

// AccountDeleteOutcome reports how a delete request was resolved: accounts
// with postings are deactivated instead of removed.
type AccountDeleteOutcome string

const (
	AccountDeleted     AccountDeleteOutcome = "DELETED"
	AccountDeactivated AccountDeleteOutcome = "DEACTIVATED"
)

package models

// AccountCategory mirrors domain.AccountCategory at the storage layer.
type AccountCategory string

// Account is the DB row shape for the accounts table.
type Account struct {
	AccountID   string
	AccountCode string
	AccountName string
	Category    AccountCategory
	AccountType string
	SubType     string
	ParentID    string
	IsActive    bool
	AuditFields
}

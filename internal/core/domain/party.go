package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyType classifies a party for subsidiary-ledger reporting.
type PartyType string

const (
	Customer PartyType = "CUSTOMER"
	Vendor   PartyType = "VENDOR"
	Employee PartyType = "EMPLOYEE"
)

// IsValid reports whether t is a recognized party type.
func (t PartyType) IsValid() bool {
	switch t {
	case Customer, Vendor, Employee:
		return true
	}
	return false
}

// Party represents a customer, vendor or employee that journal lines may
// reference. Code is unique within a PartyType, not globally.
type Party struct {
	PartyID   string    `json:"partyID"` // Primary key (UUID)
	PartyType PartyType `json:"partyType"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`

	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	// Customer fields
	PaymentTerms string           `json:"paymentTerms"`
	CreditLimit  *decimal.Decimal `json:"creditLimit"`

	// Vendor fields
	VendorNumber string `json:"vendorNumber"`

	// Employee fields
	EmployeeID string     `json:"employeeID"`
	Department string     `json:"department"`
	HireDate   *time.Time `json:"hireDate"`

	IsActive bool `json:"isActive"`
	AuditFields
}

// PartyWithBalance annotates a party with its current ledger balance.
// The sign convention depends on PartyType: customers accumulate
// debit-credit, vendors and employees credit-debit.
type PartyWithBalance struct {
	Party
	Balance decimal.Decimal `json:"balance"`
}

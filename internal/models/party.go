package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyType mirrors domain.PartyType at the storage layer.
type PartyType string

// Party is the DB row shape for the parties table.
type Party struct {
	PartyID      string
	PartyType    PartyType
	Name         string
	Code         string
	Email        string
	Phone        string
	Address      string
	PaymentTerms string
	CreditLimit  *decimal.Decimal
	VendorNumber string
	EmployeeID   string
	Department   string
	HireDate     *time.Time
	IsActive     bool
	AuditFields
}

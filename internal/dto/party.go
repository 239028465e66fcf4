package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest defines the data needed to register a new party.
// CreditLimit and HireDate arrive as strings; the service parses them and
// silently omits values it cannot parse.
type CreatePartyRequest struct {
	PartyType    domain.PartyType `json:"partyType" binding:"required,oneof=CUSTOMER VENDOR EMPLOYEE"`
	Name         string           `json:"name" binding:"required"`
	Code         string           `json:"code" binding:"required"`
	Email        string           `json:"email" binding:"omitempty,email"`
	Phone        string           `json:"phone"`
	Address      string           `json:"address"`
	PaymentTerms string           `json:"paymentTerms"`
	CreditLimit  string           `json:"creditLimit"`
	VendorNumber string           `json:"vendorNumber"`
	EmployeeID   string           `json:"employeeID"`
	Department   string           `json:"department"`
	HireDate     string           `json:"hireDate"` // YYYY-MM-DD
}

// UpdatePartyRequest defines the data allowed for updating a party.
type UpdatePartyRequest struct {
	Name         *string `json:"name"`
	Code         *string `json:"code"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	PaymentTerms *string `json:"paymentTerms"`
	CreditLimit  *string `json:"creditLimit"`
	VendorNumber *string `json:"vendorNumber"`
	EmployeeID   *string `json:"employeeID"`
	Department   *string `json:"department"`
	HireDate     *string `json:"hireDate"` // YYYY-MM-DD
	IsActive     *bool   `json:"isActive"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID      string           `json:"partyID"`
	PartyType    domain.PartyType `json:"partyType"`
	Name         string           `json:"name"`
	Code         string           `json:"code"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Address      string           `json:"address,omitempty"`
	PaymentTerms string           `json:"paymentTerms,omitempty"`
	CreditLimit  *decimal.Decimal `json:"creditLimit,omitempty"`
	VendorNumber string           `json:"vendorNumber,omitempty"`
	EmployeeID   string           `json:"employeeID,omitempty"`
	Department   string           `json:"department,omitempty"`
	HireDate     *time.Time       `json:"hireDate,omitempty"`
	IsActive     bool             `json:"isActive"`
	Balance      decimal.Decimal  `json:"balance"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ListPartiesParams defines query parameters for listing parties.
type ListPartiesParams struct {
	PartyType string `form:"partyType" binding:"omitempty,oneof=CUSTOMER VENDOR EMPLOYEE"`
	IsActive  *bool  `form:"isActive"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// ListPartiesResponse wraps a page of parties.
type ListPartiesResponse struct {
	Parties []PartyResponse `json:"parties"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

// ToPartyResponse converts a domain.Party to PartyResponse DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:      p.PartyID,
		PartyType:    p.PartyType,
		Name:         p.Name,
		Code:         p.Code,
		Email:        p.Email,
		Phone:        p.Phone,
		Address:      p.Address,
		PaymentTerms: p.PaymentTerms,
		CreditLimit:  p.CreditLimit,
		VendorNumber: p.VendorNumber,
		EmployeeID:   p.EmployeeID,
		Department:   p.Department,
		HireDate:     p.HireDate,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.LastUpdatedAt,
	}
}

// ToPartyWithBalanceResponse converts a party along with its computed balance.
func ToPartyWithBalanceResponse(p *domain.PartyWithBalance) PartyResponse {
	resp := ToPartyResponse(&p.Party)
	resp.Balance = p.Balance
	return resp
}

// ToListPartiesResponse converts a page of parties with balances.
func ToListPartiesResponse(parties []domain.PartyWithBalance, page, limit int) ListPartiesResponse {
	res := make([]PartyResponse, len(parties))
	for i := range parties {
		res[i] = ToPartyWithBalanceResponse(&parties[i])
	}
	return ListPartiesResponse{Parties: res, Page: page, Limit: limit}
}

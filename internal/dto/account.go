package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// CreateAccountRequest defines the data needed to register a new account.
type CreateAccountRequest struct {
	AccountCode string                 `json:"accountCode" binding:"required"`
	AccountName string                 `json:"accountName" binding:"required"`
	Category    domain.AccountCategory `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	AccountType string                 `json:"accountType" binding:"required"`
	SubType     string                 `json:"subType"`
	ParentID    *string                `json:"parentID"` // Optional, use pointer for nullability
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	AccountCode *string                 `json:"accountCode"`
	AccountName *string                 `json:"accountName"`
	Category    *domain.AccountCategory `json:"category" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	AccountType *string                 `json:"accountType"`
	SubType     *string                 `json:"subType"`
	ParentID    *string                 `json:"parentID"`
	IsActive    *bool                   `json:"isActive"`
}

// ParentAccountResponse is the parent summary attached to listed accounts.
type ParentAccountResponse struct {
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string                 `json:"accountID"`
	AccountCode string                 `json:"accountCode"`
	AccountName string                 `json:"accountName"`
	Category    domain.AccountCategory `json:"category"`
	AccountType string                 `json:"accountType"`
	SubType     string                 `json:"subType,omitempty"`
	ParentID    string                 `json:"parentID,omitempty"`
	Parent      *ParentAccountResponse `json:"parent,omitempty"`
	IsActive    bool                   `json:"isActive"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// DeleteAccountResponse reports how a delete request was resolved.
type DeleteAccountResponse struct {
	AccountID string `json:"accountID"`
	Outcome   string `json:"outcome"` // DELETED or DEACTIVATED
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Category string `form:"category" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IsActive *bool  `form:"isActive"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		AccountCode: acc.AccountCode,
		AccountName: acc.AccountName,
		Category:    acc.Category,
		AccountType: acc.AccountType,
		SubType:     acc.SubType,
		ParentID:    acc.ParentID,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToAccountWithParentResponse converts an account with its resolved parent.
func ToAccountWithParentResponse(acc *domain.AccountWithParent) AccountResponse {
	resp := ToAccountResponse(&acc.Account)
	if acc.Parent != nil {
		resp.Parent = &ParentAccountResponse{
			AccountID:   acc.Parent.AccountID,
			AccountCode: acc.Parent.AccountCode,
			AccountName: acc.Parent.AccountName,
		}
	}
	return resp
}

// ToListAccountsResponse converts listed accounts with parents resolved.
func ToListAccountsResponse(accounts []domain.AccountWithParent) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountWithParentResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}

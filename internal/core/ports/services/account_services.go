package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// AccountSvcFacade defines chart-of-accounts operations.
type AccountSvcFacade interface {
	// CreateAccount registers a new account after validating its code is
	// unique and its parent, when given, exists.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves a specific account by its account code.
	GetAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, each with its
	// parent summary resolved.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.AccountWithParent, error)

	// UpdateAccount applies a partial update to an existing account.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account. Accounts with children are refused;
	// accounts referenced by postings are deactivated instead of deleted.
	DeleteAccount(ctx context.Context, accountID string, userID string) (domain.AccountDeleteOutcome, error)

	// ListCashAccounts retrieves the active cash and bank accounts.
	ListCashAccounts(ctx context.Context) ([]domain.Account, error)
}

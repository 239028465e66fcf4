package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// AccountFilter narrows account listings. Nil fields mean "any".
type AccountFilter struct {
	Category *domain.AccountCategory
	IsActive *bool
}

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique account code.
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by account code.
	FindAccountsByCodes(ctx context.Context, accountCodes []string) (map[string]domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by account ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by account code ascending.
	ListAccounts(ctx context.Context, filter AccountFilter) ([]domain.Account, error)

	// ListCashAccounts retrieves active cash-equivalent accounts.
	ListCashAccounts(ctx context.Context) ([]domain.Account, error)

	// CountChildren returns the number of accounts whose parent is the given account.
	CountChildren(ctx context.Context, parentID string) (int64, error)

	// CountPostings returns the number of journal lines referencing the account code.
	CountPostings(ctx context.Context, accountCode string) (int64, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount hard-deletes an account. Callers must have verified it
	// carries no children and no postings.
	DeleteAccount(ctx context.Context, accountID string) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

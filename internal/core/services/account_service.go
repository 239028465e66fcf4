package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

var (
	ErrDuplicateCode  = errors.New("account code already in use")
	ErrParentNotFound = errors.New("parent account not found")
	ErrSelfParent     = errors.New("account cannot be its own parent")
	ErrHasChildren    = errors.New("account has child accounts")
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// resolveParent verifies the given parent exists, rejecting self-reference.
func (s *accountService) resolveParent(ctx context.Context, parentID, accountID string) error {
	if parentID == accountID {
		return ErrSelfParent
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: ID %s", ErrParentNotFound, parentID)
		}
		return fmt.Errorf("failed to fetch parent account: %w", err)
	}
	return nil
}

// CreateAccount registers a new account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %s", apperrors.ErrValidation, req.Category)
	}

	// Check code uniqueness up front for a clean error; the unique index
	// still backstops concurrent creates.
	if _, err := s.accountRepo.FindAccountByCode(ctx, req.AccountCode); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, req.AccountCode)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("account_code", req.AccountCode))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	accountID := uuid.NewString()
	parentID := ""
	if req.ParentID != nil && *req.ParentID != "" {
		if err := s.resolveParent(ctx, *req.ParentID, accountID); err != nil {
			return nil, err
		}
		parentID = *req.ParentID
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   accountID,
		AccountCode: req.AccountCode,
		AccountName: req.AccountName,
		Category:    req.Category,
		AccountType: req.AccountType,
		SubType:     req.SubType,
		ParentID:    parentID,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, req.AccountCode)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("account_code", req.AccountCode))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", accountID), slog.String("account_code", req.AccountCode))
	return &account, nil
}

// GetAccountByID retrieves a specific account by its unique identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByCode retrieves a specific account by its account code.
func (s *accountService) GetAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, accountCode)
}

// ListAccounts retrieves accounts matching the filter, resolving each
// account's parent summary in one batch.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.AccountWithParent, error) {
	filter := portsrepo.AccountFilter{IsActive: params.IsActive}
	if params.Category != "" {
		category := domain.AccountCategory(params.Category)
		filter.Category = &category
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	parentIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, acc := range accounts {
		if acc.ParentID != "" && !seen[acc.ParentID] {
			seen[acc.ParentID] = true
			parentIDs = append(parentIDs, acc.ParentID)
		}
	}

	parents := map[string]domain.Account{}
	if len(parentIDs) > 0 {
		parents, err = s.accountRepo.FindAccountsByIDs(ctx, parentIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to resolve parent accounts")
			return nil, fmt.Errorf("failed to resolve parent accounts: %w", err)
		}
	}

	result := make([]domain.AccountWithParent, len(accounts))
	for i, acc := range accounts {
		result[i] = domain.AccountWithParent{Account: acc}
		if parent, ok := parents[acc.ParentID]; ok {
			result[i].Parent = &domain.AccountRef{
				AccountID:   parent.AccountID,
				AccountCode: parent.AccountCode,
				AccountName: parent.AccountName,
			}
		}
	}
	return result, nil
}

// UpdateAccount applies a partial update to an existing account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.AccountCode != nil && *req.AccountCode != account.AccountCode {
		if _, err := s.accountRepo.FindAccountByCode(ctx, *req.AccountCode); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, *req.AccountCode)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check account code: %w", err)
		}
		account.AccountCode = *req.AccountCode
	}
	if req.AccountName != nil {
		account.AccountName = *req.AccountName
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, fmt.Errorf("%w: unknown category %s", apperrors.ErrValidation, *req.Category)
		}
		account.Category = *req.Category
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
	}
	if req.ParentID != nil {
		// Empty string detaches the account from its parent.
		if *req.ParentID == "" {
			account.ParentID = ""
		} else {
			if err := s.resolveParent(ctx, *req.ParentID, accountID); err != nil {
				return nil, err
			}
			account.ParentID = *req.ParentID
		}
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, account.AccountCode)
		}
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// DeleteAccount removes an account. The outcome depends on what references
// it: child accounts block the delete entirely, and posted journal lines
// turn it into a deactivation so history stays intact.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) (domain.AccountDeleteOutcome, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return "", err
	}

	children, err := s.accountRepo.CountChildren(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count child accounts", slog.String("account_id", accountID))
		return "", fmt.Errorf("failed to count child accounts: %w", err)
	}
	if children > 0 {
		return "", fmt.Errorf("%w: %d children", ErrHasChildren, children)
	}

	postings, err := s.accountRepo.CountPostings(ctx, account.AccountCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to count postings", slog.String("account_code", account.AccountCode))
		return "", fmt.Errorf("failed to count postings: %w", err)
	}
	if postings > 0 {
		if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
			s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
			return "", fmt.Errorf("failed to deactivate account: %w", err)
		}
		s.LogInfo(ctx, "Account deactivated instead of deleted", slog.String("account_id", accountID), slog.Int64("posting_count", postings))
		return domain.AccountDeactivated, nil
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return "", fmt.Errorf("failed to delete account: %w", err)
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return domain.AccountDeleted, nil
}

// ListCashAccounts retrieves the active cash and bank accounts.
func (s *accountService) ListCashAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListCashAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash accounts")
		return nil, fmt.Errorf("failed to list cash accounts: %w", err)
	}
	return accounts, nil
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/ledgerkeep/ledgerkeep/internal/models"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/mapping"
)

const accountColumns = `account_id, account_code, account_name, category, account_type, sub_type, parent_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	pool *pgxpool.Pool

	// hasCashMarker records whether any account carries the cash sub-type
	// marker. Probed once at startup; when false, cash lookups fall back to
	// name and type pattern matching.
	hasCashMarker bool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(ctx context.Context, pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	repo := &PgxAccountRepository{pool: pool}

	var marked bool
	err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE sub_type = $1)`, domain.CashSubType).Scan(&marked)
	if err != nil {
		slog.Warn("Failed to probe cash sub-type marker, using pattern fallback", slog.String("error", err.Error()))
	}
	repo.hasCashMarker = marked

	return repo
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// scanAccount scans one accounts row into its model shape.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var subType, parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.AccountCode,
		&m.AccountName,
		&m.Category,
		&m.AccountType,
		&subType,
		&parentID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	m.SubType = subType.String
	m.ParentID = parentID.String
	return m, nil
}

// collectAccounts drains rows into domain accounts.
func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	var accounts []domain.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account rows: %w", err)
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.AccountCode,
		m.AccountName,
		m.Category,
		m.AccountType,
		nullable(m.SubType),
		nullable(m.ParentID),
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, m.AccountCode)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountByCode retrieves an account by its unique account code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = $1;`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", accountCode, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByCodes retrieves multiple accounts keyed by account code.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, accountCodes []string) (map[string]domain.Account, error) {
	if len(accountCodes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = ANY($1);`
	rows, err := r.pool.Query(ctx, query, accountCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by codes: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		result[acc.AccountCode] = acc
	}
	return result, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by account ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		result[acc.AccountID] = acc
	}
	return result, nil
}

// ListAccounts retrieves accounts matching the filter, ordered by account code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, string(*filter.Category))
		argPos++
	}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *filter.IsActive)
		argPos++
	}
	query += " ORDER BY account_code ASC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return collectAccounts(rows)
}

// ListCashAccounts retrieves active cash-equivalent accounts. When the
// chart carries the cash sub-type marker it is authoritative; otherwise
// accounts are matched by name and type patterns.
func (r *PgxAccountRepository) ListCashAccounts(ctx context.Context) ([]domain.Account, error) {
	var query string
	var args []any
	if r.hasCashMarker {
		query = `SELECT ` + accountColumns + ` FROM accounts
			WHERE is_active = TRUE AND sub_type = $1
			ORDER BY account_code ASC;`
		args = []any{domain.CashSubType}
	} else {
		query = `SELECT ` + accountColumns + ` FROM accounts
			WHERE is_active = TRUE AND category = $1
			  AND (LOWER(account_name) LIKE '%cash%'
			    OR LOWER(account_name) LIKE '%checking%'
			    OR LOWER(account_name) LIKE '%saving%'
			    OR LOWER(account_type) LIKE '%cash%')
			ORDER BY account_code ASC;`
		args = []any{string(domain.Asset)}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash accounts: %w", err)
	}
	return collectAccounts(rows)
}

// CountChildren returns the number of accounts whose parent is the given account.
func (r *PgxAccountRepository) CountChildren(ctx context.Context, parentID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE parent_id = $1;`, parentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count children of account %s: %w", parentID, err)
	}
	return count, nil
}

// CountPostings returns the number of journal lines referencing the account code.
func (r *PgxAccountRepository) CountPostings(ctx context.Context, accountCode string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_lines WHERE account_code = $1;`, accountCode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count postings for account %s: %w", accountCode, err)
	}
	return count, nil
}

// UpdateAccount updates an existing account's details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET account_code = $2, account_name = $3, category = $4, account_type = $5,
		    sub_type = $6, parent_id = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.AccountCode,
		m.AccountName,
		m.Category,
		m.AccountType,
		nullable(m.SubType),
		nullable(m.ParentID),
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, m.AccountCode)
		}
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount hard-deletes an account. Callers must have verified it
// carries no children and no postings.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new repository for aggregate reads.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountActivity returns aggregate debit and credit totals for one
// account, over journals dated up to asOf.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, accountCode string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM journal_lines jl
		JOIN journals j ON j.journal_id = jl.journal_id
		WHERE jl.account_code = $1
		  AND ($2::timestamptz IS NULL OR j.journal_date <= $2);
	`
	var debit, credit decimal.Decimal
	err := r.pool.QueryRow(ctx, query, accountCode, nullableTime(asOf)).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to aggregate activity for account %s: %w", accountCode, err)
	}
	return debit, credit, nil
}

// GetTrialBalanceData returns per-account totals for every active account
// with activity up to asOf, ordered by account code ascending. The inner
// join keeps accounts without postings out of the report; deactivated
// accounts are excluded even when their lines remain.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, asOf *time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_code, a.account_name, a.category,
		       COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM accounts a
		JOIN journal_lines jl ON jl.account_code = a.account_code
		JOIN journals j ON j.journal_id = jl.journal_id
		WHERE a.is_active = TRUE
		  AND ($1::timestamptz IS NULL OR j.journal_date <= $1)
		GROUP BY a.account_code, a.account_name, a.category
		ORDER BY a.account_code ASC;
	`
	rows, err := r.pool.Query(ctx, query, nullableTime(asOf))
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var category string
		if err := rows.Scan(&row.AccountCode, &row.AccountName, &category, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		row.Category = domain.AccountCategory(category)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trial balance rows: %w", err)
	}
	return result, nil
}

// GetCategoryActivity returns per-account totals for every account of the
// category with activity in [from, to], keyed by account code.
func (r *PgxReportingRepository) GetCategoryActivity(ctx context.Context, category domain.AccountCategory, from, to *time.Time) (map[string]domain.AccountActivity, error) {
	query := `
		SELECT a.account_code, COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM accounts a
		JOIN journal_lines jl ON jl.account_code = a.account_code
		JOIN journals j ON j.journal_id = jl.journal_id
		WHERE a.category = $1
		  AND ($2::timestamptz IS NULL OR j.journal_date >= $2)
		  AND ($3::timestamptz IS NULL OR j.journal_date <= $3)
		GROUP BY a.account_code;
	`
	rows, err := r.pool.Query(ctx, query, string(category), nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s activity: %w", category, err)
	}
	defer rows.Close()

	result := make(map[string]domain.AccountActivity)
	for rows.Next() {
		var act domain.AccountActivity
		if err := rows.Scan(&act.AccountCode, &act.Debit, &act.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		act.Balance = act.Debit.Sub(act.Credit)
		result[act.AccountCode] = act
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity rows: %w", err)
	}
	return result, nil
}

// GetPartyPostings returns the postings attributed to a party within
// [from, to], ordered by the owning journal's (date, createdAt) ascending.
func (r *PgxReportingRepository) GetPartyPostings(ctx context.Context, partyID string, from, to *time.Time) ([]domain.PartyPosting, error) {
	query := `
		SELECT j.journal_date, j.description, COALESCE(jl.description, ''), jl.debit, jl.credit, jl.created_at
		FROM journal_lines jl
		JOIN journals j ON j.journal_id = jl.journal_id
		WHERE jl.party_id = $1
		  AND ($2::timestamptz IS NULL OR j.journal_date >= $2)
		  AND ($3::timestamptz IS NULL OR j.journal_date <= $3)
		ORDER BY j.journal_date ASC, j.created_at ASC, jl.created_at ASC;
	`
	rows, err := r.pool.Query(ctx, query, partyID, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query postings for party %s: %w", partyID, err)
	}
	defer rows.Close()

	var postings []domain.PartyPosting
	for rows.Next() {
		var p domain.PartyPosting
		if err := rows.Scan(&p.JournalDate, &p.JournalDescription, &p.LineDescription, &p.Debit, &p.Credit, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan posting row: %w", err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posting rows: %w", err)
	}
	return postings, nil
}

// GetPartyBalances returns the signed balance for each given party. The
// direction formula lives in the aggregate: customers accumulate
// debit-credit, vendors and employees credit-debit. Parties with no
// postings map to zero.
func (r *PgxReportingRepository) GetPartyBalances(ctx context.Context, partyIDs []string, from, to *time.Time) (map[string]decimal.Decimal, error) {
	result := make(map[string]decimal.Decimal, len(partyIDs))
	for _, id := range partyIDs {
		result[id] = decimal.Zero
	}
	if len(partyIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT p.party_id,
		       COALESCE(SUM(CASE WHEN p.party_type = 'CUSTOMER'
		                         THEN jl.debit - jl.credit
		                         ELSE jl.credit - jl.debit END), 0)
		FROM parties p
		JOIN journal_lines jl ON jl.party_id = p.party_id
		JOIN journals j ON j.journal_id = jl.journal_id
		WHERE p.party_id = ANY($1)
		  AND ($2::timestamptz IS NULL OR j.journal_date >= $2)
		  AND ($3::timestamptz IS NULL OR j.journal_date <= $3)
		GROUP BY p.party_id;
	`
	rows, err := r.pool.Query(ctx, query, partyIDs, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query party balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var partyID string
		var balance decimal.Decimal
		if err := rows.Scan(&partyID, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan party balance row: %w", err)
		}
		result[partyID] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read party balance rows: %w", err)
	}
	return result, nil
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/ledgerkeep/ledgerkeep/internal/models"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const partyColumns = `party_id, party_type, name, code, email, phone, address, payment_terms, credit_limit, vendor_number, employee_id, department, hire_date, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxPartyRepository struct {
	pool *pgxpool.Pool
}

// newPgxPartyRepository creates a new repository for party data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{pool: pool}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

// scanParty scans one parties row into its model shape.
func scanParty(row pgx.Row) (models.Party, error) {
	var m models.Party
	var email, phone, address, paymentTerms, vendorNumber, employeeID, department sql.NullString
	var creditLimit decimal.NullDecimal
	var hireDate sql.NullTime
	err := row.Scan(
		&m.PartyID,
		&m.PartyType,
		&m.Name,
		&m.Code,
		&email,
		&phone,
		&address,
		&paymentTerms,
		&creditLimit,
		&vendorNumber,
		&employeeID,
		&department,
		&hireDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Party{}, err
	}
	m.Email = email.String
	m.Phone = phone.String
	m.Address = address.String
	m.PaymentTerms = paymentTerms.String
	if creditLimit.Valid {
		m.CreditLimit = &creditLimit.Decimal
	}
	m.VendorNumber = vendorNumber.String
	m.EmployeeID = employeeID.String
	m.Department = department.String
	if hireDate.Valid {
		t := hireDate.Time
		m.HireDate = &t
	}
	return m, nil
}

// SaveParty persists a new party.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)

	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.pool.Exec(ctx, query,
		m.PartyID,
		m.PartyType,
		m.Name,
		m.Code,
		nullable(m.Email),
		nullable(m.Phone),
		nullable(m.Address),
		nullable(m.PaymentTerms),
		nullableDecimal(m.CreditLimit),
		nullable(m.VendorNumber),
		nullable(m.EmployeeID),
		nullable(m.Department),
		nullableTime(m.HireDate),
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation on (party_type, code)
			return fmt.Errorf("%w: party %s/%s already exists", apperrors.ErrDuplicate, m.PartyType, m.Code)
		}
		return fmt.Errorf("failed to save party %s: %w", m.PartyID, err)
	}
	return nil
}

// FindPartyByID retrieves a party by its ID.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1;`
	m, err := scanParty(r.pool.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	party := mapping.ToDomainParty(m)
	return &party, nil
}

// FindPartyByTypeAndCode retrieves a party by its (partyType, code) pair.
func (r *PgxPartyRepository) FindPartyByTypeAndCode(ctx context.Context, partyType domain.PartyType, code string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_type = $1 AND code = $2;`
	m, err := scanParty(r.pool.QueryRow(ctx, query, string(partyType), code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party %s/%s: %w", partyType, code, err)
	}
	party := mapping.ToDomainParty(m)
	return &party, nil
}

// ListParties retrieves a page of parties matching the filter.
func (r *PgxPartyRepository) ListParties(ctx context.Context, filter portsrepo.PartyFilter, limit int, offset int) ([]domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.PartyType != nil {
		query += fmt.Sprintf(" AND party_type = $%d", argPos)
		args = append(args, string(*filter.PartyType))
		argPos++
	}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *filter.IsActive)
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY party_type ASC, name ASC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	var parties []domain.Party
	for rows.Next() {
		m, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, mapping.ToDomainParty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read party rows: %w", err)
	}
	return parties, nil
}

// UpdateParty updates an existing party's details.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)

	query := `
		UPDATE parties
		SET name = $2, code = $3, email = $4, phone = $5, address = $6,
		    payment_terms = $7, credit_limit = $8, vendor_number = $9,
		    employee_id = $10, department = $11, hire_date = $12,
		    is_active = $13, last_updated_at = $14, last_updated_by = $15
		WHERE party_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.Code,
		nullable(m.Email),
		nullable(m.Phone),
		nullable(m.Address),
		nullable(m.PaymentTerms),
		nullableDecimal(m.CreditLimit),
		nullable(m.VendorNumber),
		nullable(m.EmployeeID),
		nullable(m.Department),
		nullableTime(m.HireDate),
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: party %s/%s already exists", apperrors.ErrDuplicate, m.PartyType, m.Code)
		}
		return fmt.Errorf("failed to update party %s: %w", m.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateParty marks a party as inactive.
func (r *PgxPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	query := `
		UPDATE parties
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE party_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, partyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate party %s: %w", partyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

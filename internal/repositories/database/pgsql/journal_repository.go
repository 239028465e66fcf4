package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/ledgerkeep/ledgerkeep/internal/models"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/mapping"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/pagination"
)

const journalColumns = `journal_id, journal_date, description, reference_id, created_at, created_by`
const journalLineColumns = `line_id, journal_id, account_code, debit, credit, description, party_id, created_at`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// scanJournal scans one journals row into its model shape.
func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	var referenceID sql.NullString
	err := row.Scan(
		&m.JournalID,
		&m.JournalDate,
		&m.Description,
		&referenceID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return models.Journal{}, err
	}
	m.ReferenceID = referenceID.String
	return m, nil
}

// scanJournalLine scans one journal_lines row into its model shape.
func scanJournalLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	var description, partyID sql.NullString
	err := row.Scan(
		&m.LineID,
		&m.JournalID,
		&m.AccountCode,
		&m.Debit,
		&m.Credit,
		&description,
		&partyID,
		&m.CreatedAt,
	)
	if err != nil {
		return models.JournalLine{}, err
	}
	m.Description = description.String
	m.PartyID = partyID.String
	return m, nil
}

// SaveJournal persists a journal header and all of its lines within a
// single transaction. Either everything lands or nothing does.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	m := mapping.ToModelJournal(journal)
	headerQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.JournalID,
		m.JournalDate,
		m.Description,
		nullable(m.ReferenceID),
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal %s: %w", m.JournalID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (` + journalLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		lm := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			lm.LineID,
			lm.JournalID,
			lm.AccountCode,
			lm.Debit,
			lm.Credit,
			nullable(lm.Description),
			nullable(lm.PartyID),
			lm.CreatedAt,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to insert journal lines for %s: %w", m.JournalID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close line batch for %s: %w", m.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal header by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// ListJournals retrieves a page of journals newest first, using a
// (journal_date, created_at) keyset cursor.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	query := `SELECT ` + journalColumns + ` FROM journals`
	args := []any{}

	if nextToken != nil && *nextToken != "" {
		journalDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		query += ` WHERE (journal_date, created_at) < ($1, $2)`
		args = append(args, journalDate, createdAt)
	}
	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY journal_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journals: %w", err)
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read journal rows: %w", err)
	}

	var token *string
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[limit-1]
		encoded := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		token = &encoded
	}
	return journals, token, nil
}

// FindLinesByJournalID retrieves all lines of a single journal.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	linesByJournal, err := r.FindLinesByJournalIDs(ctx, []string{journalID})
	if err != nil {
		return nil, err
	}
	return linesByJournal[journalID], nil
}

// FindLinesByJournalIDs retrieves lines for multiple journals, grouped by journal ID.
func (r *PgxJournalRepository) FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}
	query := `SELECT ` + journalLineColumns + ` FROM journal_lines
		WHERE journal_id = ANY($1)
		ORDER BY created_at ASC, line_id ASC;`
	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.JournalLine, len(journalIDs))
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		line := mapping.ToDomainJournalLine(m)
		result[line.JournalID] = append(result[line.JournalID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal line rows: %w", err)
	}
	return result, nil
}

// DeleteJournal removes a journal and all of its lines within a single
// transaction.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, journalID); err != nil {
		return fmt.Errorf("failed to delete lines of journal %s: %w", journalID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

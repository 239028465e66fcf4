package repositories

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// JournalReader defines read operations for journal headers.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a page of journals using token-based pagination,
	// newest first. It returns the journals, a token for the next page, and
	// an error.
	ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journals and their lines.
type JournalWriter interface {
	// SaveJournal persists a journal header and all of its lines within a
	// single transaction. A failure after the header insert rolls the
	// header back too.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error

	// DeleteJournal removes a journal and all of its lines within a single
	// transaction.
	DeleteJournal(ctx context.Context, journalID string) error
}

// JournalLineReader defines read operations for posting lines.
type JournalLineReader interface {
	// FindLinesByJournalID retrieves all lines of a single journal.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// FindLinesByJournalIDs retrieves lines for multiple journals, grouped by journal ID.
	FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalLineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}

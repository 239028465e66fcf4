package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every repository over the shared pool. The
// context covers startup-time probes only.
func NewRepositoryProvider(ctx context.Context, dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(ctx, dbPool)
	partyRepo := newPgxPartyRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		PartyRepo:     partyRepo,
		JournalRepo:   journalRepo,
		ReportingRepo: reportingRepo,
	}
}

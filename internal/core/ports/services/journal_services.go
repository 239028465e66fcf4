package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// JournalSvcFacade defines posting operations on the ledger.
type JournalSvcFacade interface {
	// CreateEntry validates and posts a journal entry atomically. Entries
	// must carry at least two lines whose debit and credit totals agree.
	CreateEntry(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.Journal, error)

	// GetEntry retrieves a journal entry with its lines.
	GetEntry(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListEntries retrieves a page of journal entries, newest first.
	ListEntries(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, *string, error)

	// DeleteEntry removes a journal entry and all of its lines atomically.
	DeleteEntry(ctx context.Context, journalID string, userID string) error

	// ValidateBalance reports whether candidate lines balance, without
	// touching storage.
	ValidateBalance(ctx context.Context, lines []dto.JournalLineRequest) dto.BalanceCheckResult
}

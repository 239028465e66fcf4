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
	"github.com/ledgerkeep/ledgerkeep/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrJournalUnbalanced  = errors.New("journal lines do not balance")
	ErrJournalMinLines    = errors.New("journal must have at least two lines")
	ErrNegativeAmount     = errors.New("line amounts must not be negative")
	ErrAmbiguousLine      = errors.New("line must not carry both a debit and a credit")
	ErrEmptyLine          = errors.New("line must carry a debit or a credit")
	ErrAccountNotFound    = errors.New("account not found")
	ErrDescriptionMissing = errors.New("journal description is required")
)

// journalService provides posting operations on the ledger.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountReader
	partyRepo   portsrepo.PartyReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountReader, partyRepo portsrepo.PartyReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		partyRepo:   partyRepo,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// sumLines totals the debit and credit columns of the submitted lines.
func sumLines(lines []dto.JournalLineRequest) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// validateLineShape checks each line carries exactly one positive side.
func validateLineShape(lines []dto.JournalLineRequest) error {
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d", ErrNegativeAmount, i+1)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet && creditSet {
			return fmt.Errorf("%w: line %d", ErrAmbiguousLine, i+1)
		}
		if !debitSet && !creditSet {
			return fmt.Errorf("%w: line %d", ErrEmptyLine, i+1)
		}
	}
	return nil
}

// CreateEntry validates and posts a journal entry atomically.
// Validation runs in a fixed order: presence and line count, then balance,
// then per-line shape, then account resolution.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	// --- Presence checks ---
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: journal date is required", apperrors.ErrValidation)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing)
	}
	if len(req.Lines) < 2 {
		return nil, ErrJournalMinLines
	}

	// --- Balance check (double-entry) ---
	totalDebit, totalCredit := sumLines(req.Lines)
	if !accounting.WithinTolerance(totalDebit, totalCredit) {
		return nil, fmt.Errorf("%w: total debits %s, total credits %s",
			ErrJournalUnbalanced, totalDebit.String(), totalCredit.String())
	}

	// --- Per-line shape ---
	if err := validateLineShape(req.Lines); err != nil {
		return nil, err
	}

	// --- Account resolution ---
	codes := make([]string, 0, len(req.Lines))
	seen := make(map[string]bool, len(req.Lines))
	for _, line := range req.Lines {
		if !seen[line.AccountCode] {
			seen[line.AccountCode] = true
			codes = append(codes, line.AccountCode)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal creation")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, code := range codes {
		acc, found := accounts[code]
		if !found {
			return nil, fmt.Errorf("%w: code %s", ErrAccountNotFound, code)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", ErrAccountNotFound, code)
		}
	}

	// --- Party resolution (optional per line) ---
	for i, line := range req.Lines {
		if line.PartyID == "" {
			continue
		}
		if _, err := s.partyRepo.FindPartyByID(ctx, line.PartyID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown party %s on line %d", apperrors.ErrValidation, line.PartyID, i+1)
			}
			s.LogError(ctx, err, "Failed to fetch party for journal creation", slog.String("party_id", line.PartyID))
			return nil, fmt.Errorf("failed to fetch party: %w", err)
		}
	}

	// --- Persistence ---
	now := time.Now().UTC()
	journalID := uuid.NewString()

	domainLines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		domainLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountCode: lineReq.AccountCode,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			Description: lineReq.Description,
			PartyID:     lineReq.PartyID,
			CreatedAt:   now,
		}
	}

	domainJournal := domain.Journal{
		JournalID:   journalID,
		JournalDate: req.Date,
		Description: req.Description,
		ReferenceID: req.ReferenceID,
		CreatedAt:   now,
		CreatedBy:   creatorUserID,
	}

	if err := s.journalRepo.SaveJournal(ctx, domainJournal, domainLines); err != nil {
		s.LogError(ctx, err, "Failed to save journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	s.LogInfo(ctx, "Journal posted",
		slog.String("journal_id", journalID),
		slog.Int("line_count", len(domainLines)),
		slog.String("total_debit", totalDebit.String()))

	domainJournal.Lines = domainLines
	return &domainJournal, nil
}

// GetEntry retrieves a journal entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch journal lines", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to fetch journal lines: %w", err)
	}
	journal.Lines = lines
	return journal, nil
}

// ListEntries retrieves a page of journal entries, newest first. Lines are
// fetched in one batch when requested.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	journals, nextToken, err := s.journalRepo.ListJournals(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, nil, fmt.Errorf("failed to list journals: %w", err)
	}

	if params.IncludeLines && len(journals) > 0 {
		ids := make([]string, len(journals))
		for i := range journals {
			ids[i] = journals[i].JournalID
		}
		linesByJournal, err := s.journalRepo.FindLinesByJournalIDs(ctx, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch lines for journal page")
			return nil, nil, fmt.Errorf("failed to fetch journal lines: %w", err)
		}
		for i := range journals {
			journals[i].Lines = linesByJournal[journals[i].JournalID]
		}
	}

	return journals, nextToken, nil
}

// DeleteEntry removes a journal entry and all of its lines atomically.
// Corrections are posted as new entries; there is no in-place edit.
func (s *journalService) DeleteEntry(ctx context.Context, journalID string, userID string) error {
	if _, err := s.journalRepo.FindJournalByID(ctx, journalID); err != nil {
		return err
	}
	if err := s.journalRepo.DeleteJournal(ctx, journalID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	s.LogInfo(ctx, "Journal deleted", slog.String("journal_id", journalID), slog.String("deleted_by", userID))
	return nil
}

// ValidateBalance reports whether candidate lines balance, without touching
// storage. Useful as a dry run before posting.
func (s *journalService) ValidateBalance(ctx context.Context, lines []dto.JournalLineRequest) dto.BalanceCheckResult {
	totalDebit, totalCredit := sumLines(lines)
	return dto.BalanceCheckResult{
		IsBalanced:  accounting.WithinTolerance(totalDebit, totalCredit),
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}
}

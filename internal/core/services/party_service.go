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
	"github.com/shopspring/decimal"
)

var (
	ErrPartyNotFound      = errors.New("party not found")
	ErrDuplicatePartyCode = errors.New("party code already in use for this type")
)

// hireDateLayout is the accepted wire format for employee hire dates.
const hireDateLayout = "2006-01-02"

// partyService provides operations on customers, vendors and employees.
type partyService struct {
	BaseService
	partyRepo     portsrepo.PartyRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

// NewPartyService creates a new PartyService.
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade, reportingRepo portsrepo.ReportingRepository) portssvc.PartySvcFacade {
	return &partyService{
		partyRepo:     partyRepo,
		reportingRepo: reportingRepo,
	}
}

// Ensure partyService implements the portssvc.PartySvcFacade interface
var _ portssvc.PartySvcFacade = (*partyService)(nil)

// parseCreditLimit parses a credit limit string. Unparseable or empty
// values are dropped rather than rejected, matching intake from forms.
func parseCreditLimit(ctx context.Context, s *partyService, raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	limit, err := decimal.NewFromString(raw)
	if err != nil {
		s.LogDebug(ctx, "Dropping unparseable credit limit", slog.String("value", raw))
		return nil
	}
	return &limit
}

// parseHireDate parses a YYYY-MM-DD hire date, dropping unparseable values.
func parseHireDate(ctx context.Context, s *partyService, raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(hireDateLayout, raw)
	if err != nil {
		s.LogDebug(ctx, "Dropping unparseable hire date", slog.String("value", raw))
		return nil
	}
	return &t
}

// CreateParty registers a new party.
func (s *partyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error) {
	if !req.PartyType.IsValid() {
		return nil, fmt.Errorf("%w: unknown party type %s", apperrors.ErrValidation, req.PartyType)
	}

	// Codes are unique per type, so a CUSTOMER and a VENDOR may share one.
	if _, err := s.partyRepo.FindPartyByTypeAndCode(ctx, req.PartyType, req.Code); err == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrDuplicatePartyCode, req.PartyType, req.Code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check party code uniqueness", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check party code: %w", err)
	}

	now := time.Now().UTC()
	party := domain.Party{
		PartyID:      uuid.NewString(),
		PartyType:    req.PartyType,
		Name:         req.Name,
		Code:         req.Code,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PaymentTerms: req.PaymentTerms,
		CreditLimit:  parseCreditLimit(ctx, s, req.CreditLimit),
		VendorNumber: req.VendorNumber,
		EmployeeID:   req.EmployeeID,
		Department:   req.Department,
		HireDate:     parseHireDate(ctx, s, req.HireDate),
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s/%s", ErrDuplicatePartyCode, req.PartyType, req.Code)
		}
		s.LogError(ctx, err, "Failed to save party", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save party: %w", err)
	}

	s.LogInfo(ctx, "Party created", slog.String("party_id", party.PartyID), slog.String("party_type", string(party.PartyType)))
	return &party, nil
}

// GetPartyByID retrieves a specific party by its unique identifier.
func (s *partyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrPartyNotFound, partyID)
		}
		return nil, err
	}
	return party, nil
}

// ListParties retrieves a page of parties, each annotated with its current
// signed balance computed from the ledger.
func (s *partyService) ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.PartyWithBalance, error) {
	filter := portsrepo.PartyFilter{IsActive: params.IsActive}
	if params.PartyType != "" {
		partyType := domain.PartyType(params.PartyType)
		filter.PartyType = &partyType
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	parties, err := s.partyRepo.ListParties(ctx, filter, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties")
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}

	balances := map[string]decimal.Decimal{}
	if len(parties) > 0 {
		ids := make([]string, len(parties))
		for i := range parties {
			ids[i] = parties[i].PartyID
		}
		balances, err = s.reportingRepo.GetPartyBalances(ctx, ids, nil, nil)
		if err != nil {
			s.LogError(ctx, err, "Failed to compute party balances")
			return nil, fmt.Errorf("failed to compute party balances: %w", err)
		}
	}

	result := make([]domain.PartyWithBalance, len(parties))
	for i, party := range parties {
		result[i] = domain.PartyWithBalance{
			Party:   party,
			Balance: balances[party.PartyID],
		}
	}
	return result, nil
}

// UpdateParty applies a partial update to an existing party.
func (s *partyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, updaterUserID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrPartyNotFound, partyID)
		}
		return nil, err
	}

	if req.Code != nil && *req.Code != party.Code {
		if _, err := s.partyRepo.FindPartyByTypeAndCode(ctx, party.PartyType, *req.Code); err == nil {
			return nil, fmt.Errorf("%w: %s/%s", ErrDuplicatePartyCode, party.PartyType, *req.Code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check party code: %w", err)
		}
		party.Code = *req.Code
	}
	if req.Name != nil {
		party.Name = *req.Name
	}
	if req.Email != nil {
		party.Email = *req.Email
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
	}
	if req.Address != nil {
		party.Address = *req.Address
	}
	if req.PaymentTerms != nil {
		party.PaymentTerms = *req.PaymentTerms
	}
	if req.CreditLimit != nil {
		party.CreditLimit = parseCreditLimit(ctx, s, *req.CreditLimit)
	}
	if req.VendorNumber != nil {
		party.VendorNumber = *req.VendorNumber
	}
	if req.EmployeeID != nil {
		party.EmployeeID = *req.EmployeeID
	}
	if req.Department != nil {
		party.Department = *req.Department
	}
	if req.HireDate != nil {
		party.HireDate = parseHireDate(ctx, s, *req.HireDate)
	}
	if req.IsActive != nil {
		party.IsActive = *req.IsActive
	}

	party.LastUpdatedAt = time.Now().UTC()
	party.LastUpdatedBy = updaterUserID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s/%s", ErrDuplicatePartyCode, party.PartyType, party.Code)
		}
		s.LogError(ctx, err, "Failed to update party", slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to update party: %w", err)
	}

	return party, nil
}

// DeactivateParty marks a party inactive. History referencing the party
// stays in place, so parties are never hard-deleted.
func (s *partyService) DeactivateParty(ctx context.Context, partyID string, userID string) error {
	if _, err := s.partyRepo.FindPartyByID(ctx, partyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: ID %s", ErrPartyNotFound, partyID)
		}
		return err
	}
	if err := s.partyRepo.DeactivateParty(ctx, partyID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate party", slog.String("party_id", partyID))
		return fmt.Errorf("failed to deactivate party: %w", err)
	}
	s.LogInfo(ctx, "Party deactivated", slog.String("party_id", partyID))
	return nil
}

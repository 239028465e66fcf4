package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// PartySvcFacade defines operations on customers, vendors and employees.
type PartySvcFacade interface {
	// CreateParty registers a new party after normalizing its optional
	// fields and checking (partyType, code) uniqueness.
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error)

	// GetPartyByID retrieves a specific party by its unique identifier.
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves a page of parties, each with its current balance.
	ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.PartyWithBalance, error)

	// UpdateParty applies a partial update to an existing party.
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error)

	// DeactivateParty marks a party inactive. Parties are never hard-deleted.
	DeactivateParty(ctx context.Context, partyID string, userID string) error
}

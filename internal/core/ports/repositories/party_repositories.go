package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// PartyFilter narrows party listings. Nil fields mean "any".
type PartyFilter struct {
	PartyType *domain.PartyType
	IsActive  *bool
}

// PartyReader defines read operations for party data.
type PartyReader interface {
	// FindPartyByID retrieves a specific party by its unique identifier.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// FindPartyByTypeAndCode retrieves a party by its (partyType, code) pair.
	FindPartyByTypeAndCode(ctx context.Context, partyType domain.PartyType, code string) (*domain.Party, error)

	// ListParties retrieves a page of parties matching the filter, ordered
	// by (partyType asc, name asc).
	ListParties(ctx context.Context, filter PartyFilter, limit int, offset int) ([]domain.Party, error)
}

// PartyWriter defines write operations for party data.
type PartyWriter interface {
	// SaveParty persists a new party.
	SaveParty(ctx context.Context, party domain.Party) error

	// UpdateParty updates an existing party's details.
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeactivateParty marks a party as inactive. Parties are never hard-deleted.
	DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error
}

// PartyRepositoryFacade combines all party-related repository interfaces.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}

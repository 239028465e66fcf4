package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine represents a single debit-or-credit posting within a journal.
// Exactly one of Debit/Credit is strictly positive, the other is zero.
type JournalLine struct {
	LineID      string          `json:"lineID"`      // Primary key (UUID)
	JournalID   string          `json:"journalID"`   // FK -> Journal, cascade-deleted with it
	AccountCode string          `json:"accountCode"` // Must reference an active account at creation time
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	PartyID     string          `json:"partyID"` // Optional subsidiary-ledger link
	CreatedAt   time.Time       `json:"createdAt"`
}

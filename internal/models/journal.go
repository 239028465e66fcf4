package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is the DB row shape for the journals table.
type Journal struct {
	JournalID   string
	JournalDate time.Time
	Description string
	ReferenceID string
	CreatedAt   time.Time
	CreatedBy   string
}

// JournalLine is the DB row shape for the journal_lines table.
type JournalLine struct {
	LineID      string
	JournalID   string
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
	PartyID     string
	CreatedAt   time.Time
}

package domain

import "time"

// Journal represents one balanced, dated posting batch. Journals are
// immutable once committed; amendment is delete-then-recreate.
type Journal struct {
	JournalID   string        `json:"journalID"`   // Primary key (UUID)
	JournalDate time.Time     `json:"journalDate"` // Accounting date, distinct from CreatedAt
	Description string        `json:"description"`
	ReferenceID string        `json:"referenceID"` // Optional external document reference
	Lines       []JournalLine `json:"lines,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	CreatedBy   string        `json:"createdBy"`
}

package mapping

import (
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/models"
)

// ToModelJournal converts a domain journal header to its DB row shape.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:   d.JournalID,
		JournalDate: d.JournalDate,
		Description: d.Description,
		ReferenceID: d.ReferenceID,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToDomainJournal converts a DB row to the domain journal header.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:   m.JournalID,
		JournalDate: m.JournalDate,
		Description: m.Description,
		ReferenceID: m.ReferenceID,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// ToModelJournalLine converts a domain posting to its DB row shape.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		JournalID:   d.JournalID,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		PartyID:     d.PartyID,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainJournalLine converts a DB row to the domain posting.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		PartyID:     m.PartyID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainJournalLineSlice converts a slice of DB rows.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

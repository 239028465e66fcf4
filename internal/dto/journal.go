package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one posting line inside a journal submission.
type JournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	PartyID     string          `json:"partyID"`
}

// CreateJournalRequest defines the data needed to post a journal entry.
// The service re-validates shape and balance beyond what binding covers.
type CreateJournalRequest struct {
	Date        time.Time            `json:"date" binding:"required"`
	Description string               `json:"description" binding:"required"`
	ReferenceID string               `json:"referenceID"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ValidateBalanceRequest carries candidate lines for a dry-run balance check.
type ValidateBalanceRequest struct {
	Lines []JournalLineRequest `json:"lines" binding:"required"`
}

// BalanceCheckResult reports whether a set of lines balances and its totals.
type BalanceCheckResult struct {
	IsBalanced  bool            `json:"isBalanced"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// JournalLineResponse defines the data returned for a posting line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	JournalID   string          `json:"journalID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	PartyID     string          `json:"partyID,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID   string                `json:"journalID"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	ReferenceID string                `json:"referenceID,omitempty"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit        int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken    *string `form:"nextToken"`
	IncludeLines bool    `form:"includeLines"`
}

// ListJournalsResponse wraps a page of journals with the continuation token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain line to its DTO form.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      line.LineID,
		JournalID:   line.JournalID,
		AccountCode: line.AccountCode,
		Debit:       line.Debit,
		Credit:      line.Credit,
		Description: line.Description,
		PartyID:     line.PartyID,
		CreatedAt:   line.CreatedAt,
	}
}

// ToJournalResponse converts a domain journal, lines included.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:   j.JournalID,
		Date:        j.JournalDate,
		Description: j.Description,
		ReferenceID: j.ReferenceID,
		CreatedAt:   j.CreatedAt,
		CreatedBy:   j.CreatedBy,
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(j.Lines))
		for i := range j.Lines {
			resp.Lines[i] = ToJournalLineResponse(&j.Lines[i])
		}
	}
	return resp
}

// ToListJournalsResponse converts a page of journals.
func ToListJournalsResponse(journals []domain.Journal, nextToken *string) ListJournalsResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return ListJournalsResponse{Journals: res, NextToken: nextToken}
}

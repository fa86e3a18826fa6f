package dto

import (
	"time"

	"github.com/finbooks/fin_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest defines one candidate line of a new entry. Exactly
// one of debitAmount or creditAmount must be strictly positive; the domain
// line constructor enforces this.
type CreateJournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	EntryDate     time.Time                  `json:"entryDate" binding:"required"`
	ReferenceType string                     `json:"referenceType" binding:"required"`
	ReferenceID   string                     `json:"referenceID"`
	Description   string                     `json:"description" binding:"required"`
	Notes         string                     `json:"notes"`
	Lines         []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// PostJournalEntryRequest carries the identity of the poster.
type PostJournalEntryRequest struct {
	PostedBy string `json:"postedBy" binding:"required"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       string                `json:"entryID"`
	EntryNumber   string                `json:"entryNumber"`
	EntryDate     time.Time             `json:"entryDate"`
	ReferenceType string                `json:"referenceType"`
	ReferenceID   string                `json:"referenceID"`
	Description   string                `json:"description"`
	Notes         string                `json:"notes"`
	Lines         []JournalLineResponse `json:"lines,omitempty"`
	TotalDebits   decimal.Decimal       `json:"totalDebits"`
	TotalCredits  decimal.Decimal       `json:"totalCredits"`
	IsPosted      bool                  `json:"isPosted"`
	PostedDate    *time.Time            `json:"postedDate,omitempty"`
	PostedBy      string                `json:"postedBy,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
}

// ToJournalLineResponses converts domain lines to response DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	res := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		res[i] = JournalLineResponse{
			LineID:       l.LineID,
			AccountID:    l.AccountID,
			AccountCode:  l.AccountCode,
			AccountName:  l.AccountName,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			Description:  l.Description,
		}
	}
	return res
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		EntryNumber:   e.EntryNumber,
		EntryDate:     e.EntryDate,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		Description:   e.Description,
		Notes:         e.Notes,
		Lines:         ToJournalLineResponses(e.Lines),
		TotalDebits:   e.TotalDebits(),
		TotalCredits:  e.TotalCredits(),
		IsPosted:      e.IsPosted,
		PostedDate:    e.PostedDate,
		PostedBy:      e.PostedBy,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse is a page of entries with the next-page token.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}
